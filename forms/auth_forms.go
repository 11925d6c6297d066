package forms

import "strings"

// SignupForm registers a new account.
type SignupForm struct {
	Username  string `form:"username" validate:"required,min=3,max=150,username"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Password  string `form:"password" validate:"required,min=8,max=72"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
	Errors    Errors `form:"-" validate:"-"`
}

// Validate checks the signup fields.
func (f *SignupForm) Validate() bool {
	f.Errors = Errors{}
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	collect(f, f.Errors)
	return f.Errors.Valid()
}

// LoginForm authenticates an existing account.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" validate:"-"`
	Errors   Errors `form:"-" validate:"-"`
}

// Validate checks that both credentials were supplied.
func (f *LoginForm) Validate() bool {
	f.Errors = Errors{}
	f.Username = strings.TrimSpace(f.Username)
	collect(f, f.Errors)
	return f.Errors.Valid()
}

// SafeNext returns a local redirect target, falling back to "/".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
