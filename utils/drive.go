package utils

import (
	"fmt"
	"regexp"
)

// Design images are shared as Google Drive links in several shapes
// (/d/<id>, ?id=<id>, /folders/<id>).
var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`folders/([a-zA-Z0-9_-]+)`),
}

// DriveThumbnail derives a thumbnail URL from a Google Drive share link.
// Unrecognized URLs are returned as-is.
func DriveThumbnail(url string) string {
	for _, pattern := range drivePatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 {
			return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w400", match[1])
		}
	}
	return url
}
