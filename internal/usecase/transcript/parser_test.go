package transcript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ColonFormat(t *testing.T) {
	raw := "Alice: Hello everyone\nBob: Hi Alice, great to see you\nAlice: How are you doing?"

	got := NewParser().Parse(raw)

	require.Len(t, got, 3)
	assert.Equal(t, Utterance{Speaker: "Alice", Content: "Hello everyone", Sequence: 1}, got[0])
	assert.Equal(t, "Bob", got[1].Speaker)
	assert.Equal(t, "Hi Alice, great to see you", got[1].Content)
	assert.Equal(t, 3, got[2].Sequence)
	assert.Nil(t, got[2].Timestamp)
}

func TestParser_WellFormedLinesAllAccepted(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "Speaker%d: line number %d\n", i%4, i)
		if i%5 == 0 {
			b.WriteString("\n   \n")
		}
	}

	got := NewParser().Parse(b.String())

	require.Len(t, got, 25)
	for i, u := range got {
		assert.Equal(t, i+1, u.Sequence)
	}
}

func TestParser_SkipsMalformedLines(t *testing.T) {
	raw := strings.Join([]string{
		"Alice: first",
		": no speaker",
		"Bob:    ",
		"just some words without a label",
		"Carol: second",
	}, "\n")

	got := NewParser().Parse(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Speaker)
	assert.Equal(t, 1, got[0].Sequence)
	assert.Equal(t, "Carol", got[1].Speaker)
	assert.Equal(t, 2, got[1].Sequence)
}

func TestParser_TimestampFormat(t *testing.T) {
	raw := strings.Join([]string{
		"[09:00] Alice: Good morning",
		"[09:01] Bob: Morning! Ready?",
		"9:02:15 Carol: Yes, let's start",
		"no timestamp: skipped in this mode",
	}, "\n")

	p := NewParser()
	require.Equal(t, FormatTimestamp, p.DetectFormat(strings.Split(raw, "\n")))

	got := p.Parse(raw)

	require.Len(t, got, 3)
	require.NotNil(t, got[0].Timestamp)
	assert.Equal(t, "09:00", *got[0].Timestamp)
	assert.Equal(t, "Alice", got[0].Speaker)
	assert.Equal(t, "9:02:15", *got[2].Timestamp)
	assert.Equal(t, "Carol", got[2].Speaker)
	assert.Equal(t, "Yes, let's start", got[2].Content)
}

func TestParser_DetectFormatFallsBackToColon(t *testing.T) {
	lines := []string{"[09:00] Alice: hi", "Bob: hello", "Carol: hey", "", "Dan: yo"}
	assert.Equal(t, FormatColon, NewParser().DetectFormat(lines))

	assert.Equal(t, FormatColon, NewParser().DetectFormat([]string{"plain", "text"}))
	assert.Equal(t, FormatColon, NewParser().DetectFormat(nil))
}

func TestParser_DetectFormatSamplesFirstTenLines(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("[10:%02d] Alice: msg", i))
	}
	for i := 0; i < 10; i++ {
		lines = append(lines, "Bob: no timestamp here")
	}

	assert.Equal(t, FormatTimestamp, NewParser().DetectFormat(lines))
}

func TestParser_NothingAccepted(t *testing.T) {
	got := NewParser().Parse("no colons anywhere\nstill nothing")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestNormalizeSpeakerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "Alice"},
		{"  JOHN   smith ", "John Smith"},
		{"[10:30] bob", "Bob"},
		{"carol 10:30:15", "Carol"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSpeakerName(tt.in))
		})
	}
}
