// Package router classifies application paths and decides where a request
// for a path actually lands, given the current session.
package router

import (
	"net/url"
	"slices"
	"strings"
)

// Application paths.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathDocuments = "/documents"
	PathChat      = "/chat"
	PathNotes     = "/notes"
	PathAnalytics = "/analytics"
	PathSettings  = "/settings"
)

// RedirectParam carries the originally requested path on the login route.
const RedirectParam = "redirect"

var (
	protected = []string{PathDashboard, PathDocuments, PathChat, PathNotes, PathAnalytics, PathSettings}
	public    = []string{PathHome, PathLogin, PathRegister}
)

// Protected returns the protected route roots.
func Protected() []string { return slices.Clone(protected) }

// Public returns the public routes.
func Public() []string { return slices.Clone(public) }

// pathOf drops query and fragment.
func pathOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return u.Path
	}
	p, _, _ := strings.Cut(raw, "?")
	return p
}

// IsProtected reports whether p is a protected root or lies below one.
func IsProtected(p string) bool {
	p = pathOf(p)
	return slices.ContainsFunc(protected, func(root string) bool {
		return p == root || strings.HasPrefix(p, root+"/")
	})
}

// IsPublic reports whether p is one of the public routes.
func IsPublic(p string) bool {
	return slices.Contains(public, pathOf(p))
}

// Known reports whether p is routable at all.
func Known(p string) bool {
	return IsPublic(p) || IsProtected(p)
}

// redirectEscaper escapes the characters a query value cannot carry as is.
// Slashes are kept so the return path stays readable.
var redirectEscaper = strings.NewReplacer("%", "%25", "&", "%26", "+", "%2B", "#", "%23", " ", "%20", ";", "%3B")

// LoginURL builds the login route carrying target as the return path.
func LoginURL(loginPath, target string) string {
	return loginPath + "?" + RedirectParam + "=" + redirectEscaper.Replace(pathOf(target))
}

// ReturnTo extracts the return path from a login URL. It falls back when
// the parameter is missing or does not point at a local path.
func ReturnTo(loginURL, fallback string) string {
	_, query, ok := strings.Cut(loginURL, "?")
	if !ok {
		return fallback
	}
	v, err := url.ParseQuery(query)
	if err != nil {
		return fallback
	}
	target := v.Get(RedirectParam)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}
