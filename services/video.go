package services

import (
	"regexp"
)

// VideoTitle is the label every listed video carries.
const VideoTitle = "Watch Video"

var watchLinkPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]{11})`)

// EmbedURL rewrites a YouTube watch or short link into its embeddable form.
// Anything else is returned unchanged.
func EmbedURL(stored string) string {
	match := watchLinkPattern.FindStringSubmatch(stored)
	if match == nil {
		return stored
	}
	return "https://www.youtube.com/embed/" + match[1]
}
