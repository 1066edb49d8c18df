// Package export renders interview transcripts for download and training data.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jobprep/api/internal/models"
)

const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "md"
)

// Exporter writes one session in a download format.
type Exporter interface {
	Export(w io.Writer, session *models.InterviewSession) error
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter for format. An empty format means JSON.
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return JSONExporter{}, nil
	case FormatYAML, "yml":
		return YAMLExporter{}, nil
	case FormatMarkdown, "markdown":
		return MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q: %w", format, models.ErrInvalidInput)
	}
}

// Filename is the download name for session in e's format.
func Filename(session *models.InterviewSession, e Exporter) string {
	return fmt.Sprintf("interview_%s.%s", session.ID, e.Extension())
}

type transcriptTurn struct {
	Speaker   string    `json:"speaker" yaml:"speaker"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type transcript struct {
	ID              string           `json:"id" yaml:"id"`
	JobRole         string           `json:"jobRole" yaml:"job_role"`
	Specification   string           `json:"specification,omitempty" yaml:"specification,omitempty"`
	ExperienceLevel string           `json:"experienceLevel,omitempty" yaml:"experience_level,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" yaml:"created_at"`
	EndedAt         *time.Time       `json:"endedAt,omitempty" yaml:"ended_at,omitempty"`
	Conversation    []transcriptTurn `json:"conversation" yaml:"conversation"`
	Feedback        *models.Feedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

func speaker(t models.Turn) string {
	if t.IsQuestion() {
		return "interviewer"
	}
	return "candidate"
}

func newTranscript(session *models.InterviewSession) transcript {
	turns := make([]transcriptTurn, 0, len(session.Conversation))
	for _, t := range session.Conversation {
		turns = append(turns, transcriptTurn{Speaker: speaker(t), Text: t.Text, Timestamp: t.Timestamp})
	}
	return transcript{
		ID:              session.ID,
		JobRole:         session.JobRole,
		Specification:   session.Specification,
		ExperienceLevel: session.ExperienceLevel,
		CreatedAt:       session.CreatedAt,
		EndedAt:         session.EndedAt,
		Conversation:    turns,
		Feedback:        session.Feedback,
	}
}

type JSONExporter struct{}

func (JSONExporter) Export(w io.Writer, session *models.InterviewSession) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newTranscript(session))
}

func (JSONExporter) ContentType() string { return "application/json" }
func (JSONExporter) Extension() string   { return "json" }

type YAMLExporter struct{}

func (YAMLExporter) Export(w io.Writer, session *models.InterviewSession) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newTranscript(session)); err != nil {
		return err
	}
	return enc.Close()
}

func (YAMLExporter) ContentType() string { return "application/yaml" }
func (YAMLExporter) Extension() string   { return "yaml" }

type MarkdownExporter struct{}

func (MarkdownExporter) Export(w io.Writer, session *models.InterviewSession) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Mock interview: %s\n\n", session.JobRole)
	fmt.Fprintf(&b, "- Started: %s\n", session.CreatedAt.Format(time.RFC3339))
	if session.EndedAt != nil {
		fmt.Fprintf(&b, "- Ended: %s\n", session.EndedAt.Format(time.RFC3339))
	}
	if session.ExperienceLevel != "" {
		fmt.Fprintf(&b, "- Experience level: %s\n", session.ExperienceLevel)
	}
	if session.Specification != "" {
		fmt.Fprintf(&b, "- Requirements: %s\n", session.Specification)
	}

	b.WriteString("\n## Conversation\n\n")
	n := 0
	for _, t := range session.Conversation {
		if t.IsQuestion() {
			n++
			fmt.Fprintf(&b, "**Q%d.** %s\n\n", n, t.Text)
		} else {
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(t.Text, "\n", "\n> "))
		}
	}

	if fb := session.Feedback; fb != nil {
		b.WriteString("## Feedback\n\n")
		fmt.Fprintf(&b, "Score: **%g/100**\n\n", fb.Score)
		fmt.Fprintf(&b, "%s\n", fb.Summary)
		writeList(&b, "Strengths", fb.Strengths)
		writeList(&b, "Weaknesses", fb.Weaknesses)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func (MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }
func (MarkdownExporter) Extension() string   { return "md" }
