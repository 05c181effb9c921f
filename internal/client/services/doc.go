// Package services wraps the backend REST API, one service per resource
// family: auth, documents, chat, notes, analytics and settings.
//
// Services are stateless. They gate calls on the configured feature flags,
// validate inputs that can be checked locally and return the typed errors of
// package client. State lives in package stores.
package services
