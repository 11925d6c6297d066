package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/forms"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

func TestLoadDefinesEveryPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"posts/index.html",
		"posts/group_list.html",
		"posts/profile.html",
		"posts/post_detail.html",
		"posts/create_post.html",
		"users/login.html",
		"users/signup.html",
		"about/author.html",
		"about/tech.html",
		"core/404.html",
		"core/403.html",
		"core/500.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRenderIndexPage(t *testing.T) {
	tmpl := MustLoad()
	gid := uint(1)
	posts := utils.SliceSource[models.Post]{
		{ID: 2, Text: "<b>bold</b>", PubDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Author: models.User{Username: "leo"}, GroupID: &gid, Group: &models.Group{ID: 1, Slug: "cats", Title: "Cats"}},
		{ID: 1, Text: "plain", Author: models.User{Username: "leo"}},
	}
	page, err := utils.Paginate[models.Post](posts, 1, "1", false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "posts/index.html", map[string]interface{}{
		"page_obj": page,
	}))
	out := buf.String()
	assert.Contains(t, out, "<b>bold</b>")
	assert.Contains(t, out, `href="/group/cats/"`)
	assert.Contains(t, out, `href="/posts/2/"`)
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "Log in")
	assert.NotContains(t, out, "plain")
}

func TestRenderCreatePageWithErrors(t *testing.T) {
	tmpl := MustLoad()
	form := &forms.PostForm{Group: "3", Errors: forms.Errors{"text": "This field is required."}}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "posts/create_post.html", map[string]interface{}{
		"user":    &models.User{ID: 1, Username: "leo"},
		"form":    form,
		"groups":  []models.Group{{ID: 3, Title: "Cats"}, {ID: 4, Title: "Dogs"}},
		"is_edit": true,
		"post_id": uint(9),
	}))
	out := buf.String()
	assert.Contains(t, out, "This field is required.")
	assert.Contains(t, out, `<option value="3" selected>Cats</option>`)
	assert.Contains(t, out, `action="/posts/9/edit/"`)
	assert.Contains(t, out, "Edit post")
}
