package domain

import (
	"fmt"
	"regexp"
)

// youTubeIDPattern accepts watch?v=, youtu.be/, embed/, v/, e/ and channel-style
// paths, capturing the 11-character video id.
var youTubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// YouTubeVideoID extracts the video id from a YouTube URL.
func YouTubeVideoID(url string) (string, bool) {
	m := youTubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EmbedURL builds an autoplaying, looping player URL for a single video.
func EmbedURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&loop=1&playlist=%s", videoID, videoID)
}

// MusicEmbed returns the player URL for a letter, or nil when the letter has no
// music link or no id can be extracted from it.
func (l Letter) MusicEmbed() *string {
	if l.YouTubeMusicURL == nil {
		return nil
	}
	id, ok := YouTubeVideoID(*l.YouTubeMusicURL)
	if !ok {
		return nil
	}
	embed := EmbedURL(id)
	return &embed
}
