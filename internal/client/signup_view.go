package client

import (
	"context"
	"sync"

	"github.com/pageza/tomato/backend/internal/validation"
)

// Registrar creates accounts. Client implements it against an accounts
// service; the Tomato API itself serves no account routes.
type Registrar interface {
	SignUp(ctx context.Context, f validation.SignUpForm) (string, error)
}

// SignUpView is the state of the account sign-up form
type SignUpView struct {
	accounts Registrar
	notes    *Notifier
	submit   inFlight

	mu     sync.Mutex
	form   validation.SignUpForm
	errors validation.SignUpErrors
}

func NewSignUpView(accounts Registrar, notes *Notifier) *SignUpView {
	return &SignUpView{accounts: accounts, notes: notes}
}

func (v *SignUpView) Form() validation.SignUpForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *SignUpView) SetForm(f validation.SignUpForm) {
	v.mu.Lock()
	v.form = f
	v.mu.Unlock()
}

func (v *SignUpView) Errors() validation.SignUpErrors {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors
}

func (v *SignUpView) InFlight() bool {
	return v.submit.active()
}

// Submit validates the form and registers the account
func (v *SignUpView) Submit(ctx context.Context) error {
	v.mu.Lock()
	form := v.form
	errs := validation.ValidateSignUp(form)
	v.errors = errs
	v.mu.Unlock()

	if !errs.Valid() {
		v.notes.Push(KindError, errs.First())
		return invalidForm(errs.First())
	}
	if !v.submit.acquire() {
		return ErrSubmitInFlight
	}
	defer v.submit.release()

	msg, err := v.accounts.SignUp(ctx, form)
	if err != nil {
		v.notes.Push(KindError, failureMessage(err, "Something went wrong. Please try again later."))
		return err
	}
	if msg == "" {
		msg = "Account created successfully!"
	}

	v.mu.Lock()
	v.form = validation.SignUpForm{}
	v.errors = validation.SignUpErrors{}
	v.mu.Unlock()

	v.notes.Push(KindSuccess, msg)
	return nil
}
