package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Theme cookie name and values.
const (
	ThemeCookie = "theme"
	ThemeDay    = "day"
	ThemeNight  = "night"
)

const themeMaxAge = 365 * 24 * time.Hour

// Theme returns the colour theme for r: the cookie if it holds a known
// value, otherwise day when the client hints at a light preference, and
// night by default.
func Theme(r *http.Request) string {
	if c, err := r.Cookie(ThemeCookie); err == nil {
		switch c.Value {
		case ThemeDay, ThemeNight:
			return c.Value
		}
	}
	if r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "light" {
		return ThemeDay
	}
	return ThemeNight
}

func otherTheme(t string) string {
	if t == ThemeDay {
		return ThemeNight
	}
	return ThemeDay
}

// toggleTheme handles POST /theme: it flips the theme cookie and sends the
// browser back where it came from.
func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	next := otherTheme(Theme(r))
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    next,
		Path:     "/",
		MaxAge:   int(themeMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	})
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-host path of the Referer, or "/".
func backTo(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
