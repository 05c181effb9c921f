// Package stores holds the client's state containers. Each store wraps one
// service, owns a mutex-guarded state value and exposes a snapshot through
// State. Actions take a context; a cancelled call leaves the state as it was.
//
// Every action records a user-facing message in the store's error field on
// failure and returns the error so the caller can raise a notification.
package stores
