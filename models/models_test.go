package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostExcerpt(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short text kept", text: "hello", want: "hello"},
		{name: "exactly fifteen", text: "123456789012345", want: "123456789012345"},
		{name: "long text cut", text: "Тестовый пост с длинным текстом", want: "Тестовый пост с"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Post{Text: tt.text}.Excerpt())
			assert.Equal(t, tt.want, Comment{Text: tt.text}.String())
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "leo", User{Username: "leo"}.DisplayName())
	assert.Equal(t, "Leo", User{Username: "leo", FirstName: "Leo"}.DisplayName())
	assert.Equal(t, "Leo Tolstoy", User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}.DisplayName())
}

func TestGroupString(t *testing.T) {
	assert.Equal(t, "Cats", Group{Title: "Cats", Slug: "cats"}.String())
}
