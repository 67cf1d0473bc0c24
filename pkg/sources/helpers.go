package sources

import (
	"net/url"
	"strings"
)

// URL joins a file name to the catalog's base URL.
func (c *Catalog) URL(f File) string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	return base + "/" + f.Name
}

// IsValidURL checks if a string is a valid http(s) URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
