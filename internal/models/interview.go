package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TurnQuestion = "question"
	TurnAnswer   = "answer"
)

// Turn is one question or one answer within an interview conversation.
type Turn struct {
	Kind      string    `bson:"kind"`
	Text      string    `bson:"text"`
	Timestamp time.Time `bson:"timestamp"`
}

func QuestionTurn(text string, at time.Time) Turn {
	return Turn{Kind: TurnQuestion, Text: text, Timestamp: at}
}

func AnswerTurn(text string, at time.Time) Turn {
	return Turn{Kind: TurnAnswer, Text: text, Timestamp: at}
}

func (t Turn) IsQuestion() bool { return t.Kind == TurnQuestion }

// MarshalJSON renders a turn as {"question": ...} or {"answer": ...}.
func (t Turn) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{"timestamp": t.Timestamp}
	switch t.Kind {
	case TurnQuestion, TurnAnswer:
		out[t.Kind] = t.Text
	default:
		return nil, fmt.Errorf("unknown turn kind %q", t.Kind)
	}
	return json.Marshal(out)
}

func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Question  *string   `json:"question"`
		Answer    *string   `json:"answer"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Question != nil && raw.Answer == nil:
		*t = QuestionTurn(*raw.Question, raw.Timestamp)
	case raw.Answer != nil && raw.Question == nil:
		*t = AnswerTurn(*raw.Answer, raw.Timestamp)
	default:
		return fmt.Errorf("turn must carry exactly one of question or answer")
	}
	return nil
}

// Feedback is the structured assessment derived when an interview ends.
type Feedback struct {
	Summary    string   `bson:"summary" json:"summary" yaml:"summary"`
	Strengths  []string `bson:"strengths" json:"strengths" yaml:"strengths"`
	Weaknesses []string `bson:"weaknesses" json:"weaknesses" yaml:"weaknesses"`
	Score      float64  `bson:"score" json:"score" yaml:"score"`
}

// InterviewSession is one mock interview. Conversation is append-only.
type InterviewSession struct {
	ID              string     `bson:"_id" json:"id"`
	OwnerID         string     `bson:"ownerId" json:"ownerId"`
	JobRole         string     `bson:"jobRole" json:"jobRole"`
	Specification   string     `bson:"specification,omitempty" json:"specification,omitempty"`
	ExperienceLevel string     `bson:"experienceLevel,omitempty" json:"experienceLevel,omitempty"`
	Conversation    []Turn     `bson:"conversation" json:"conversation"`
	Feedback        *Feedback  `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	EndedAt         *time.Time `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
}

func (s *InterviewSession) OwnedBy(userID string) bool {
	return s.OwnerID == userID
}
