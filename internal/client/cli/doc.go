// Package cli provides the interactive docmind terminal client.
//
// Every command plays the part of a page: it names the route it lives on,
// the route guard decides whether it may run, and it works only through
// the stores. Failures become notifications that are printed after the
// command finishes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or the input ends.
package cli
