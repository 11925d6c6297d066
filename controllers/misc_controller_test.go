package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/models"
)

func TestAboutPages(t *testing.T) {
	app := newApp(t)

	w := app.do(request{target: "/about/author/"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "About the author")

	w = app.do(request{target: "/about/tech/"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Technologies")
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	w := app.do(request{target: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"status":"ok"}}`, w.Body.String())
}

func TestStats(t *testing.T) {
	app := newApp(t)
	author := app.user("leo")
	cats := app.group("cats")
	post := app.post(author, cats, "one")
	app.post(author, nil, "two")
	require.NoError(t, app.repo.CreateComment(&models.Comment{Text: "hi", AuthorID: author.ID, PostID: post.ID}))

	w := app.do(request{target: "/stats/"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)
	assert.JSONEq(t, "1", string(data["user_count"]))
	assert.JSONEq(t, "1", string(data["group_count"]))
	assert.JSONEq(t, "2", string(data["post_count"]))
	assert.JSONEq(t, "1", string(data["comment_count"]))

	target := "/posts/" + idString(post.ID) + "/"
	app.do(request{target: target})
	app.do(request{target: target})

	w = app.do(request{target: "/stats" + target})
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)
	assert.JSONEq(t, "2", string(data["views"]))
	assert.JSONEq(t, "1", string(data["comments_count"]))

	assert.Equal(t, http.StatusNotFound, app.do(request{target: "/stats/posts/404/"}).Code)
}
