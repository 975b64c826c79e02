package crawler

import (
	"net/url"
	"path"
	"strings"
)

// followable extensions; an empty extension is a directory-style page.
var pageExtensions = map[string]bool{"": true, ".html": true, ".htm": true}

// resolve turns href into an absolute URL without fragment, relative to base.
func resolve(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""
	u.RawFragment = ""
	return u, true
}

// followable reports whether u is an http(s) page inside domain.
func followable(u *url.URL, domain string) bool {
	if u == nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	domain = strings.ToLower(domain)
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return false
	}
	return pageExtensions[strings.ToLower(path.Ext(u.Path))]
}

// normalize parses a start URL and strips its fragment.
func normalize(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u, true
}
