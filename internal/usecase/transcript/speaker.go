package transcript

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var embeddedTimestampPattern = regexp.MustCompile(`\[?\d{1,2}:\d{2}(?::\d{2})?\]?`)

// NormalizeSpeakerName produces the identity key used for the speaker registry:
// trimmed, timestamps removed, each word title-cased.
func NormalizeSpeakerName(name string) string {
	name = strings.TrimSpace(name)
	name = embeddedTimestampPattern.ReplaceAllString(name, "")

	caser := cases.Title(language.Und)
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = caser.String(word)
	}

	return strings.Join(words, " ")
}
