package client

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docmind/internal/common"
)

// UserMessage renders err as text suitable for an inline error or a toast.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		httpErr *HTTPError
		valErr  *ValidationError
		netErr  *NetworkError
		authErr *AuthError
		msgErr  interface{ UserMessage() string }
	)

	switch {
	case errors.As(err, &msgErr):
		return msgErr.UserMessage()
	case errors.As(err, &valErr):
		if errors.Is(valErr, common.ErrFeatureDisabled) {
			return valErr.Message
		}
		return valErr.Error()
	case errors.As(err, &authErr):
		return "Your session has expired. Please log in again."
	case errors.As(err, &httpErr):
		return httpErr.Message
	case errors.As(err, &netErr):
		var to interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &to) && to.Timeout()) {
			return "The request timed out. Please try again."
		}
		return "Network error. Please check your connection."
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	default:
		return err.Error()
	}
}
