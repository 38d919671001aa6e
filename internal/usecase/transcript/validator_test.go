package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{ReasonEmpty}},
		{name: "whitespace only", raw: " \n\t ", want: []string{ReasonEmpty}},
		{name: "too short", raw: "Alice: hi\nBob: yo", want: []string{ReasonTooShort}},
		{name: "single speaker line", raw: "Alice: this is a long enough line\nand more text", want: []string{ReasonSpeakerFormat}},
		{name: "empty content after colon", raw: "Alice: hello there everyone\nBob:\n: orphan", want: []string{ReasonSpeakerFormat}},
		{name: "valid", raw: "Alice: Hello everyone\nBob: Hi Alice", want: nil},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.raw))
		})
	}
}
