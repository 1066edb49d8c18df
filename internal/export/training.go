package export

import (
	"encoding/json"
	"fmt"
	"io"

	"jobprep/api/internal/interview"
	"jobprep/api/internal/models"
)

// TrainingExample pairs a session's transcript (user turn) with its stored
// feedback (model turn). ok is false for sessions that were never ended.
func TrainingExample(session *models.InterviewSession) (models.TrainingDataPoint, bool, error) {
	if session.Feedback == nil {
		return models.TrainingDataPoint{}, false, nil
	}

	feedback, err := json.Marshal(session.Feedback)
	if err != nil {
		return models.TrainingDataPoint{}, false, fmt.Errorf("marshal feedback: %w", err)
	}

	prompt := fmt.Sprintf("Job role: %s\n\n%s", session.JobRole, interview.BuildTranscript(session.Conversation))
	return models.TrainingDataPoint{
		Contents: []models.TrainingContent{
			{Role: "user", Parts: []models.TrainingPart{{Text: prompt}}},
			{Role: "model", Parts: []models.TrainingPart{{Text: string(feedback)}}},
		},
	}, true, nil
}

// WriteJSONL writes one training example per ended session, one per line, and
// returns how many were written.
func WriteJSONL(w io.Writer, sessions []models.InterviewSession) (int, error) {
	enc := json.NewEncoder(w)
	written := 0
	for i := range sessions {
		point, ok, err := TrainingExample(&sessions[i])
		if err != nil {
			return written, err
		}
		if !ok {
			continue
		}
		if err := enc.Encode(point); err != nil {
			return written, fmt.Errorf("write training example: %w", err)
		}
		written++
	}
	return written, nil
}
