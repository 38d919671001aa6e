package analytics

import (
	"strings"

	"github.com/johnquangdev/team-pulse/internal/domain/entities"
	"github.com/johnquangdev/team-pulse/internal/usecase/transcript"
	"github.com/johnquangdev/team-pulse/pkg/sentiment"
)

var questionPrefixes = []string{
	"who", "what", "where", "when", "why", "how",
	"is", "are", "can", "could", "would", "should",
	"do", "does", "did",
}

// MessageAnalysis holds the per-message figures
type MessageAnalysis struct {
	WordCount      int                     `json:"word_count" yaml:"word_count"`
	SentimentScore float64                 `json:"sentiment_score" yaml:"sentiment_score"`
	Label          entities.SentimentLabel `json:"label" yaml:"label"`
	IsQuestion     bool                    `json:"is_question" yaml:"is_question"`
}

// AnalyzedMessage is an utterance with its analysis and normalized speaker
type AnalyzedMessage struct {
	Speaker   string  `json:"speaker" yaml:"speaker"`
	Content   string  `json:"content" yaml:"content"`
	Timestamp *string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Sequence  int     `json:"sequence" yaml:"sequence"`

	MessageAnalysis `yaml:",inline"`
}

// MessageAnalyzer scores individual messages
type MessageAnalyzer struct {
	provider sentiment.Provider
}

// NewMessageAnalyzer creates a MessageAnalyzer backed by the given sentiment provider
func NewMessageAnalyzer(provider sentiment.Provider) *MessageAnalyzer {
	return &MessageAnalyzer{provider: provider}
}

// Analyze computes word count, sentiment and question flag for one message
func (a *MessageAnalyzer) Analyze(content string) MessageAnalysis {
	score := a.provider.Analyze(content).Compound

	return MessageAnalysis{
		WordCount:      len(strings.Fields(content)),
		SentimentScore: score,
		Label:          MessageLabel(score),
		IsQuestion:     IsQuestion(content),
	}
}

// AnalyzeUtterances analyzes every utterance in order, normalizing speaker names
func (a *MessageAnalyzer) AnalyzeUtterances(utterances []transcript.Utterance) []AnalyzedMessage {
	messages := make([]AnalyzedMessage, 0, len(utterances))
	for _, u := range utterances {
		messages = append(messages, AnalyzedMessage{
			Speaker:         transcript.NormalizeSpeakerName(u.Speaker),
			Content:         u.Content,
			Timestamp:       u.Timestamp,
			Sequence:        u.Sequence,
			MessageAnalysis: a.Analyze(u.Content),
		})
	}
	return messages
}

// MessageLabel classifies a compound score for a single message
func MessageLabel(score float64) entities.SentimentLabel {
	switch {
	case score >= MessagePositiveThreshold:
		return entities.SentimentPositive
	case score <= MessageNegativeThreshold:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// IsQuestion reports whether content contains a question mark or opens with
// an interrogative or auxiliary word. The opening check is a plain prefix match.
func IsQuestion(content string) bool {
	if strings.Contains(content, "?") {
		return true
	}

	lower := strings.ToLower(strings.TrimSpace(content))
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
