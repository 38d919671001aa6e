package transcript

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinTranscriptLength is counted in characters after trimming
	MinTranscriptLength = 20
	// MinSpeakerLines is the fewest "Speaker: content" lines accepted
	MinSpeakerLines = 2
)

const (
	ReasonEmpty         = "Transcript is empty"
	ReasonTooShort      = "Transcript is too short (minimum 20 characters)"
	ReasonSpeakerFormat = "Could not find valid speaker format. Expected format: 'Speaker: Message'"
)

// Validator is the cheap pre-parse gate for transcripts
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the reasons the transcript was rejected, or nil when it may be parsed.
// Checks stop at the first failure.
func (v *Validator) Validate(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{ReasonEmpty}
	}

	if utf8.RuneCountInString(trimmed) < MinTranscriptLength {
		return []string{ReasonTooShort}
	}

	validLines := 0
	for _, line := range strings.Split(trimmed, "\n") {
		label, content, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		if strings.TrimSpace(label) != "" && strings.TrimSpace(content) != "" {
			validLines++
		}
	}

	if validLines < MinSpeakerLines {
		return []string{ReasonSpeakerFormat}
	}

	return nil
}
