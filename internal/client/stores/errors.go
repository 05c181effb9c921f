package stores

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when a mutating action for the same id is still
// running.
var ErrInFlight = errors.New("operation already in progress")

// RegistrationError reports a failed registration. AccountCreated is true
// when the account exists on the server but the chained login failed.
type RegistrationError struct {
	AccountCreated bool
	Err            error
}

func (e *RegistrationError) Error() string {
	if e.AccountCreated {
		return fmt.Sprintf("account created but login failed: %v", e.Err)
	}
	return fmt.Sprintf("registration failed: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// UserMessage tells the user whether they should log in by hand.
func (e *RegistrationError) UserMessage() string {
	if e.AccountCreated {
		return "Your account was created, but signing in failed. Please log in."
	}
	return userMessage(e.Err)
}
