package services

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildProjectURL constructs the frontend link of a project page, e.g.
// "https://gallery.example.com/projects/{projectID}". It returns the empty
// string when either part is missing.
func BuildProjectURL(baseURL, projectID string) string {
	if baseURL == "" || projectID == "" {
		return ""
	}
	return fmt.Sprintf("%s/projects/%s", strings.TrimSuffix(baseURL, "/"), url.PathEscape(projectID))
}
