// Package urlmatch decides which launch arguments are URLs the shell is
// allowed to open.
package urlmatch

import "strings"

var schemes = []string{"https://", "http://"}

// stripScheme removes a leading https:// or http:// prefix.
// ok is false when s carries neither.
func stripScheme(s string) (rest string, ok bool) {
	for _, scheme := range schemes {
		if strings.HasPrefix(s, scheme) {
			return strings.TrimPrefix(s, scheme), true
		}
	}
	return "", false
}

// hostOf returns the authority of an http(s) URL: everything between the
// scheme and the first "/". Ports are kept.
func hostOf(s string) (string, bool) {
	rest, ok := stripScheme(s)
	if !ok {
		return "", false
	}
	host, _, _ := strings.Cut(rest, "/")
	return host, true
}

// AllowedHost returns the host launch URLs must match. A config URL without
// an http(s) scheme yields the empty host.
func AllowedHost(configURL string) string {
	host, _ := hostOf(configURL)
	return host
}

// FindAllowedURL returns the first argument after args[0] that is an
// http(s) URL on the configured host.
//
// An empty allowed host still matches an argument whose host is also empty
// (e.g. "http:///path"). This is kept as-is until product confirms intent.
func FindAllowedURL(args []string, configURL string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	allowed := AllowedHost(configURL)
	for _, arg := range args[1:] {
		host, ok := hostOf(arg)
		if !ok {
			continue
		}
		if host == allowed {
			return arg, true
		}
	}
	return "", false
}

// NavigateScript builds the script that points a webview at url. Single
// quotes are escaped so the URL cannot terminate the string literal.
func NavigateScript(url string) string {
	return "window.location.href = '" + strings.ReplaceAll(url, "'", `\'`) + "'"
}
