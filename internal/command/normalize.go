package command

import (
	"regexp"
	"strings"
)

// Normalizer turns free-form prompt input into the token text to insert.
type Normalizer interface {
	Normalize(value string) (string, error)
}

// NormalizerFunc adapts an infallible function to Normalizer.
type NormalizerFunc func(value string) string

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(value string) (string, error) {
	return f(value), nil
}

// Built-in normalizers.
var (
	Emoji Normalizer = NormalizerFunc(NormalizeEmoji)
	Icon  Normalizer = NormalizerFunc(NormalizeIcon)
)

// IconPrefix is the Font Awesome class prefix accepted and stripped by NormalizeIcon.
const IconPrefix = "fa-"

var emojiPattern = regexp.MustCompile(`^:(.+):$`)

// NormalizeEmoji returns value as an emoji shortcode.
// "smile" and ":smile:" both become ":smile:".
func NormalizeEmoji(value string) string {
	if m := emojiPattern.FindStringSubmatch(value); m != nil {
		value = m[1]
	}
	return ":" + value + ":"
}

// NormalizeIcon returns value as a Font Awesome token.
// "camera" and "fa-camera" both become ":fa-camera:".
func NormalizeIcon(value string) string {
	value = strings.TrimPrefix(value, IconPrefix)
	return ":" + IconPrefix + value + ":"
}
