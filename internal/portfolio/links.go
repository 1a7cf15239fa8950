package portfolio

import (
	"net/url"
)

// Detail page query parameters.
const (
	ParamSlug = "slug"
	ParamFrom = "from"
)

// ProjectHref links to the detail page of slug. from is the listing page's
// encoded query string, carried along so the detail page can link back to the
// same filtered view.
func ProjectHref(slug, from string) string {
	v := url.Values{}
	v.Set(ParamSlug, slug)
	v.Set(ParamFrom, from)
	return "/project?" + v.Encode()
}

// BackHref returns the listing page URL to return to from a detail page.
// from is re-parsed and re-encoded; a malformed value links to the unfiltered
// listing.
func BackHref(from string) string {
	if from == "" {
		return "/"
	}
	v, err := url.ParseQuery(from)
	if err != nil || len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
