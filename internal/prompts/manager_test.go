package prompts

import (
	"strings"
	"testing"
)

type promptData struct {
	JobRole          string
	Specification    string
	ExperienceLevel  string
	Transcript       string
	ConversationJSON string
}

func TestNewPromptManagerLoadsTemplates(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager returned error: %v", err)
	}

	templates := pm.GetTemplates()
	for mode, variants := range map[string][]string{
		"interviewer": {"start", "follow_up"},
		"feedback":    {"default"},
	} {
		for _, v := range variants {
			if templates[mode][v] == nil {
				t.Fatalf("expected template %s/%s to be loaded", mode, v)
			}
		}
	}
}

func TestBuildPromptStart(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager returned error: %v", err)
	}

	prompt, err := pm.BuildPrompt("interviewer", "start", promptData{JobRole: "Backend Engineer", Specification: "Node, SQL"})
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	for _, want := range []string{`"Backend Engineer"`, "Node, SQL", "one clear question at a time", "Never provide answers", "ask for it first"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q:\n%s", want, prompt)
		}
	}

	generic, err := pm.BuildPrompt("interviewer", "start", promptData{JobRole: "SRE", ExperienceLevel: "advanced"})
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	if !strings.Contains(generic, "No specific requirements provided") {
		t.Fatalf("expected generic placeholder for missing specification:\n%s", generic)
	}
	if !strings.Contains(generic, "experience level is advanced") {
		t.Fatalf("expected stated experience level:\n%s", generic)
	}
}

func TestBuildPromptFollowUpAndFeedback(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager returned error: %v", err)
	}

	followUp, err := pm.BuildPrompt("interviewer", "follow_up", promptData{JobRole: "SRE", Transcript: "Q1: Why?\nA1: Because."})
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	if !strings.Contains(followUp, "Q1: Why?\nA1: Because.") || !strings.Contains(followUp, "exactly one new question") {
		t.Fatalf("unexpected follow-up prompt:\n%s", followUp)
	}

	feedback, err := pm.BuildPrompt("feedback", "default", promptData{JobRole: "SRE", ConversationJSON: `[{"question":"Why?"}]`})
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	for _, want := range []string{`[{"question":"Why?"}]`, `"summary"`, `"strengths"`, `"weaknesses"`, `"score"`, "low or 0"} {
		if !strings.Contains(feedback, want) {
			t.Fatalf("expected feedback prompt to contain %q:\n%s", want, feedback)
		}
	}
}

func TestBuildPromptErrors(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager returned error: %v", err)
	}

	if _, err := pm.BuildPrompt("unknown", "start", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := pm.BuildPrompt("interviewer", "unknown", nil); err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if _, err := pm.BuildPrompt("interviewer", "start", map[string]string{}); err == nil {
		t.Fatal("expected error for missing template keys")
	}
}

func TestCompileRejectsBadFiles(t *testing.T) {
	if _, err := compile("bad", []byte("base_prompt: [")); err == nil {
		t.Fatal("expected yaml error")
	}
	if _, err := compile("empty", []byte("base_prompt: hi\n")); err == nil {
		t.Fatal("expected error for file without variants")
	}
	if _, err := compile("broken", []byte("variants:\n  x: \"{{.Oops\"\n")); err == nil {
		t.Fatal("expected template parse error")
	}
}
