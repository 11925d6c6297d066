package forms

import "github.com/cppla/yatube/utils"

// CommentForm is the form shown under a post.
type CommentForm struct {
	Text   string `form:"text" validate:"required"`
	Errors Errors `form:"-" validate:"-"`
}

// Validate sanitizes and checks the comment text.
func (f *CommentForm) Validate() bool {
	f.Errors = Errors{}
	f.Text = utils.Sanitize(f.Text)
	collect(f, f.Errors)
	return f.Errors.Valid()
}
