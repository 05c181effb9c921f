// Package models defines the records exchanged with the docmind backend and
// the small client-only state types built around them.
package models
