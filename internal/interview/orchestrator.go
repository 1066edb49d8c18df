// Package interview runs turn-based mock interviews against a completion provider.
//
// A session's conversation alternates question and answer turns, starting with a
// question. Start produces the first question, SubmitAnswer appends the answer and
// the next question together, and End derives structured feedback from the whole
// conversation. Completion failures never fail a request: the question text falls
// back to models.NoResponseText.
package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobprep/api/internal/events"
	"jobprep/api/internal/llm"
	"jobprep/api/internal/metrics"
	"jobprep/api/internal/models"
	"jobprep/api/internal/prompts"
)

const (
	promptModeInterviewer = "interviewer"
	promptModeFeedback    = "feedback"
)

// StartInput describes the interview a candidate wants to practise.
type StartInput struct {
	RoleLabel       string
	Specification   string
	ExperienceLevel string
}

type promptData struct {
	JobRole          string
	Specification    string
	ExperienceLevel  string
	Transcript       string
	ConversationJSON string
}

type Orchestrator struct {
	store     Store
	provider  llm.Provider
	prompts   prompts.PromptProvider
	publisher events.Publisher
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewOrchestrator(store Store, provider llm.Provider, promptManager prompts.PromptProvider, publisher events.Publisher, logger *zap.Logger) *Orchestrator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Orchestrator{
		store:     store,
		provider:  provider,
		prompts:   promptManager,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
	}
}

// Start creates a session for ownerID and asks the first question.
func (o *Orchestrator) Start(ctx context.Context, ownerID string, in StartInput) (*models.InterviewSession, string, error) {
	role := strings.TrimSpace(in.RoleLabel)
	if role == "" {
		return nil, "", fmt.Errorf("job role is required: %w", models.ErrInvalidInput)
	}

	session := &models.InterviewSession{
		ID:              o.newID(),
		OwnerID:         ownerID,
		JobRole:         role,
		Specification:   strings.TrimSpace(in.Specification),
		ExperienceLevel: in.ExperienceLevel,
		Conversation:    []models.Turn{},
		CreatedAt:       o.now(),
	}

	prompt, err := o.prompts.BuildPrompt(promptModeInterviewer, "start", o.promptDataFor(session))
	if err != nil {
		return nil, "", fmt.Errorf("build start prompt: %w", err)
	}

	question := o.completeQuestion(ctx, session.ID, prompt)
	session.Conversation = append(session.Conversation, models.QuestionTurn(question, o.now()))

	if err := o.store.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("create interview: %w", err)
	}

	metrics.InterviewEvent("started")
	o.logger.Info("interview started",
		zap.String("interview_id", session.ID),
		zap.String("owner_id", ownerID),
		zap.String("job_role", role))

	return session, question, nil
}

// SubmitAnswer records answer and returns the follow-up question.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, sessionID, answer string) (string, error) {
	session, err := o.store.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}

	answerTurn := models.AnswerTurn(answer, o.now())
	conversation := append(append([]models.Turn{}, session.Conversation...), answerTurn)

	data := o.promptDataFor(session)
	data.Transcript = BuildTranscript(conversation)
	prompt, err := o.prompts.BuildPrompt(promptModeInterviewer, "follow_up", data)
	if err != nil {
		return "", fmt.Errorf("build follow-up prompt: %w", err)
	}

	question := o.completeQuestion(ctx, session.ID, prompt)

	if err := o.store.AppendTurns(ctx, session.ID, answerTurn, models.QuestionTurn(question, o.now())); err != nil {
		return "", fmt.Errorf("append turns: %w", err)
	}

	metrics.InterviewEvent("answered")
	o.logger.Debug("answer recorded",
		zap.String("interview_id", session.ID),
		zap.Int("turns", len(conversation)+1))

	return question, nil
}

// End derives feedback from the conversation and stores it, replacing any
// feedback from an earlier call.
func (o *Orchestrator) End(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	session, err := o.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	conversationJSON, err := json.Marshal(session.Conversation)
	if err != nil {
		return nil, fmt.Errorf("encode conversation: %w", err)
	}

	data := o.promptDataFor(session)
	data.ConversationJSON = string(conversationJSON)
	prompt, err := o.prompts.BuildPrompt(promptModeFeedback, "default", data)
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	raw, ok := o.complete(ctx, session.ID, prompt)
	if !ok {
		raw = models.NoResponseText
	}
	feedback := ParseFeedback(raw)

	endedAt := o.now()
	updated, err := o.store.SetFeedback(ctx, session.ID, feedback, endedAt)
	if err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	metrics.InterviewEvent("ended")
	events.PublishAsync(o.publisher, o.logger, events.ChannelInterviewEnded, events.InterviewEndedEvent{
		InterviewID: updated.ID,
		OwnerID:     updated.OwnerID,
		JobRole:     updated.JobRole,
		Turns:       len(updated.Conversation),
		Score:       feedback.Score,
		EndedAt:     endedAt,
	})
	o.logger.Info("interview ended",
		zap.String("interview_id", updated.ID),
		zap.Float64("score", feedback.Score))

	return updated, nil
}

// Get returns a session without touching the completion provider.
func (o *Orchestrator) Get(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return o.store.GetByID(ctx, sessionID)
}

// ListForOwner returns ownerID's sessions, newest first.
func (o *Orchestrator) ListForOwner(ctx context.Context, ownerID string) ([]models.InterviewSession, error) {
	sessions, err := o.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	if sessions == nil {
		sessions = []models.InterviewSession{}
	}
	return sessions, nil
}

// Delete removes a session. Only its owner or an admin may do so.
func (o *Orchestrator) Delete(ctx context.Context, sessionID, requesterID string, requesterIsAdmin bool) error {
	session, err := o.store.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := Authorize(session, requesterID, requesterIsAdmin); err != nil {
		return err
	}
	if err := o.store.Delete(ctx, session.ID); err != nil {
		return err
	}

	metrics.InterviewEvent("deleted")
	o.logger.Info("interview deleted",
		zap.String("interview_id", session.ID),
		zap.String("requester_id", requesterID),
		zap.Bool("admin", requesterIsAdmin))
	return nil
}

// Authorize reports whether requesterID may act on session.
func Authorize(session *models.InterviewSession, requesterID string, requesterIsAdmin bool) error {
	if requesterIsAdmin || session.OwnedBy(requesterID) {
		return nil
	}
	return fmt.Errorf("interview %s belongs to another user: %w", session.ID, models.ErrForbidden)
}

func (o *Orchestrator) promptDataFor(session *models.InterviewSession) promptData {
	return promptData{
		JobRole:         session.JobRole,
		Specification:   session.Specification,
		ExperienceLevel: session.ExperienceLevel,
	}
}

// complete calls the provider once. ok is false when the call failed or produced no text.
func (o *Orchestrator) complete(ctx context.Context, sessionID, prompt string) (string, bool) {
	requestID := o.newID()
	resp, err := o.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		o.logger.Warn("completion failed, using placeholder",
			zap.String("interview_id", sessionID),
			zap.String("request_id", requestID),
			zap.String("provider", o.provider.GetProviderName()),
			zap.Error(err))
		return "", false
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		o.logger.Warn("completion returned no text, using placeholder",
			zap.String("interview_id", sessionID),
			zap.String("request_id", requestID))
		return "", false
	}
	return resp.Content, true
}

func (o *Orchestrator) completeQuestion(ctx context.Context, sessionID, prompt string) string {
	text, ok := o.complete(ctx, sessionID, prompt)
	if !ok {
		return models.NoResponseText
	}
	return strings.TrimSpace(text)
}
