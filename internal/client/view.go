package client

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrSubmitInFlight is returned when a view is asked to submit while its
	// previous submit has not finished
	ErrSubmitInFlight = errors.New("submit already in progress")

	// ErrInvalidForm is returned when the form fails validation. No request
	// is sent.
	ErrInvalidForm = errors.New("form has validation errors")
)

// inFlight guards a submit trigger
type inFlight struct {
	mu   sync.Mutex
	busy bool
}

func (f *inFlight) acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return false
	}
	f.busy = true
	return true
}

func (f *inFlight) release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

func (f *inFlight) active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func invalidForm(first string) error {
	return fmt.Errorf("%w: %s", ErrInvalidForm, first)
}

// failureMessage returns the server's message for err, or fallback
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
