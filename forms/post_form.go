package forms

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// GroupLookup resolves a group id; it returns an error when no such group exists.
type GroupLookup interface {
	GroupByID(id uint) (*models.Group, error)
}

// PostForm is the create/edit form for a post.
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group"`

	GroupID *uint  `form:"-" validate:"-"`
	Errors  Errors `form:"-" validate:"-"`
}

// PostFormFrom pre-fills a form from an existing post.
func PostFormFrom(p *models.Post) *PostForm {
	f := &PostForm{Text: p.Text, GroupID: p.GroupID, Errors: Errors{}}
	if p.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	return f
}

// Validate cleans the submitted values and checks them. It reports whether the
// form is valid; details are in f.Errors.
func (f *PostForm) Validate(groups GroupLookup) bool {
	f.Errors = Errors{}
	f.Text = utils.Sanitize(f.Text)
	f.Group = strings.TrimSpace(f.Group)
	f.GroupID = nil

	collect(f, f.Errors)

	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 64)
		if err != nil {
			f.Errors.Add("group", "Select a valid choice.")
		} else if _, err := groups.GroupByID(uint(id)); err != nil {
			f.Errors.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		} else {
			gid := uint(id)
			f.GroupID = &gid
		}
	}
	return f.Errors.Valid()
}

// Apply copies the cleaned values onto p.
func (f *PostForm) Apply(p *models.Post) {
	p.Text = f.Text
	p.GroupID = f.GroupID
}

// AddImageError records a rejected image upload.
func (f *PostForm) AddImageError(err error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	switch {
	case errors.Is(err, utils.ErrNotAnImage):
		f.Errors.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	case errors.Is(err, utils.ErrTooLarge):
		f.Errors.Add("image", "The uploaded image is too large.")
	default:
		f.Errors.Add("image", "The image could not be saved.")
	}
}
