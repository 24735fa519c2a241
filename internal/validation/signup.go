package validation

import (
	"regexp"
	"strings"
)

var (
	signupEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	passwordSpecials   = "@$!%*?&"
)

// SignUpForm is the state of the account sign-up form
type SignUpForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}

// SignUpErrors holds one message per sign-up form field
type SignUpErrors struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeToTerms    string
}

func (e SignUpErrors) First() string {
	return firstOf(e.FirstName, e.LastName, e.Email, e.Password, e.ConfirmPassword, e.AgreeToTerms)
}

func (e SignUpErrors) Valid() bool {
	return e.First() == ""
}

// ValidateSignUp checks every sign-up form field
func ValidateSignUp(f SignUpForm) SignUpErrors {
	return SignUpErrors{
		FirstName:       personName("First name", f.FirstName),
		LastName:        personName("Last name", f.LastName),
		Email:           signupEmail(f.Email),
		Password:        Password(f.Password),
		ConfirmPassword: confirmPassword(f.Password, f.ConfirmPassword),
		AgreeToTerms:    terms(f.AgreeToTerms),
	}
}

func personName(label, v string) string {
	t := strings.TrimSpace(v)
	switch {
	case t == "":
		return label + " is required"
	case length(t) < 2:
		return label + " must be at least 2 characters"
	case !lettersOnly(t):
		return label + " can only contain letters"
	}
	return ""
}

func signupEmail(v string) string {
	switch {
	case v == "":
		return "Email is required"
	case !signupEmailPattern.MatchString(v):
		return "Please enter a valid email"
	case length(v) > 100:
		return "Email is too long"
	}
	return ""
}

// Password applies the sign-up password rules in order and returns the first failure
func Password(p string) string {
	switch {
	case p == "":
		return "Password is required"
	case length(p) < 8:
		return "Password must be at least 8 characters"
	case length(p) > 50:
		return "Password is too long"
	case !strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz"):
		return "Password must contain at least one lowercase letter"
	case !strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		return "Password must contain at least one uppercase letter"
	case !strings.ContainsAny(p, "0123456789"):
		return "Password must contain at least one number"
	case !strings.ContainsAny(p, passwordSpecials):
		return "Password must contain at least one special character (@$!%*?&)"
	}
	return ""
}

func confirmPassword(p, confirm string) string {
	switch {
	case confirm == "":
		return "Please confirm your password"
	case p != confirm:
		return "Passwords do not match"
	}
	return ""
}

func terms(agreed bool) string {
	if !agreed {
		return "You must agree to the terms and conditions"
	}
	return ""
}
