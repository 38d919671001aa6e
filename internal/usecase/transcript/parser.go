package transcript

import (
	"regexp"
	"strings"
)

// Format is the line layout detected for a transcript
type Format string

const (
	FormatColon     Format = "colon"
	FormatTimestamp Format = "timestamp"
)

// formatSampleSize is how many leading lines format detection looks at
const formatSampleSize = 10

var (
	timestampDetectPattern = regexp.MustCompile(`\[?\d{1,2}:\d{2}\]?\s+[\p{L}\p{N}_]+:`)
	colonDetectPattern     = regexp.MustCompile(`^[\p{L}\p{N}_]+.*?:\s+`)

	colonLinePattern     = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	timestampLinePattern = regexp.MustCompile(`^\[?(\d{1,2}:\d{2}(?::\d{2})?)\]?\s+([^:]+):\s*(.+)$`)
)

// Utterance is one parsed speaker turn, before analysis
type Utterance struct {
	Speaker   string  `json:"speaker"`
	Content   string  `json:"content"`
	Timestamp *string `json:"timestamp,omitempty"`
	Sequence  int     `json:"sequence"`
}

// Parser turns raw transcript text into ordered utterances
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the accepted utterances in transcript order.
// Malformed lines are skipped; an empty result means nothing could be parsed.
func (p *Parser) Parse(raw string) []Utterance {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	switch p.DetectFormat(lines) {
	case FormatTimestamp:
		return parseLines(lines, parseTimestampLine)
	default:
		return parseLines(lines, parseColonLine)
	}
}

// DetectFormat votes over the non-empty lines among the first ten.
// Timestamp layout wins only with a strict majority; colon is the fallback.
func (p *Parser) DetectFormat(lines []string) Format {
	head := lines
	if len(head) > formatSampleSize {
		head = head[:formatSampleSize]
	}

	sample := make([]string, 0, len(head))
	for _, line := range head {
		if strings.TrimSpace(line) != "" {
			sample = append(sample, line)
		}
	}

	var timestampCount, colonCount int
	for _, line := range sample {
		if timestampDetectPattern.MatchString(line) {
			timestampCount++
		}
		if colonDetectPattern.MatchString(line) {
			colonCount++
		}
	}

	half := float64(len(sample)) / 2
	switch {
	case float64(timestampCount) > half:
		return FormatTimestamp
	case float64(colonCount) > half:
		return FormatColon
	default:
		return FormatColon
	}
}

type lineParser func(line string) (speaker, content string, timestamp *string, ok bool)

func parseLines(lines []string, parse lineParser) []Utterance {
	utterances := make([]Utterance, 0, len(lines))
	sequence := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, content, timestamp, ok := parse(line)
		if !ok {
			continue
		}

		sequence++
		utterances = append(utterances, Utterance{
			Speaker:   speaker,
			Content:   content,
			Timestamp: timestamp,
			Sequence:  sequence,
		})
	}

	return utterances
}

func parseColonLine(line string) (string, string, *string, bool) {
	match := colonLinePattern.FindStringSubmatch(line)
	if match == nil {
		return "", "", nil, false
	}

	speaker := strings.TrimSpace(match[1])
	content := strings.TrimSpace(match[2])
	if speaker == "" || content == "" {
		return "", "", nil, false
	}
	return speaker, content, nil, true
}

func parseTimestampLine(line string) (string, string, *string, bool) {
	match := timestampLinePattern.FindStringSubmatch(line)
	if match == nil {
		return "", "", nil, false
	}

	speaker := strings.TrimSpace(match[2])
	content := strings.TrimSpace(match[3])
	if speaker == "" || content == "" {
		return "", "", nil, false
	}

	timestamp := match[1]
	return speaker, content, &timestamp, true
}
