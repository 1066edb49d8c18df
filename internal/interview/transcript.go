package interview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"
)

// BuildTranscript renders turns as "Q1: ...", "A1: ...", "Q2: ..." lines.
func BuildTranscript(turns []models.Turn) string {
	lines := make([]string, 0, len(turns))
	for i, turn := range turns {
		label := "A"
		if turn.IsQuestion() {
			label = "Q"
		}
		lines = append(lines, fmt.Sprintf("%s%d: %s", label, i/2+1, turn.Text))
	}
	return strings.Join(lines, "\n")
}

type feedbackPayload struct {
	Summary    *string  `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Score      *float64 `json:"score"`
}

// ParseFeedback decodes a completion into Feedback. The text (optionally inside a
// Markdown code fence) must be exactly one JSON object with a string summary;
// anything else yields a fallback whose summary is the raw text.
func ParseFeedback(raw string) models.Feedback {
	fallback := models.Feedback{
		Summary:    raw,
		Strengths:  []string{},
		Weaknesses: []string{},
		Score:      0,
	}

	body := utils.StripFences(raw)
	if !strings.HasPrefix(body, "{") {
		return fallback
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var payload feedbackPayload
	if err := dec.Decode(&payload); err != nil {
		return fallback
	}
	if _, err := dec.Token(); err != io.EOF {
		return fallback
	}
	if payload.Summary == nil {
		return fallback
	}

	feedback := models.Feedback{
		Summary:    *payload.Summary,
		Strengths:  payload.Strengths,
		Weaknesses: payload.Weaknesses,
	}
	if feedback.Strengths == nil {
		feedback.Strengths = []string{}
	}
	if feedback.Weaknesses == nil {
		feedback.Weaknesses = []string{}
	}
	if payload.Score != nil {
		feedback.Score = clampScore(*payload.Score)
	}
	return feedback
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
