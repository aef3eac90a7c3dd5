package surveys

import (
	"fmt"
	"time"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// SaveResponse validates a submitted response against its question's declared
// type and persists it. Callers that already resolved the question can pass it
// to skip the catalog read; otherwise it is looked up by id.
//
// Array-shaped submissions are split into one atomic row per (subject, value)
// pair. Rows with a survey id are upserted by their natural key, so
// resubmitting an answer updates the existing row instead of duplicating it;
// ad hoc rows (no survey id) always insert.
func (s *Service) SaveResponse(input types.ResponseInput, question *types.Question) ([]types.Response, error) {
	if question == nil {
		q, err := s.questions.GetQuestionByID(input.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up question %s: %w", input.QuestionID, err)
		}
		question = &q
	}

	atomics, err := normalizeResponseInput(input, *question)
	if err != nil {
		return nil, err
	}

	saved := make([]types.Response, 0, len(atomics))
	for _, response := range atomics {
		var row types.Response
		if response.SurveyID != "" {
			row, err = s.responses.UpsertSurveyResponse(response)
		} else {
			row, err = s.responses.InsertResponse(response)
		}
		if err != nil {
			return saved, fmt.Errorf("failed to save response for question %s: %w", response.QuestionID, err)
		}
		saved = append(saved, row)
	}
	return saved, nil
}

// normalizeResponseInput turns a boundary submission into validated atomic
// rows. A multi-value submission must pair an array subject with an array
// value of the same length; anything else is a validation error.
func normalizeResponseInput(input types.ResponseInput, question types.Question) ([]types.Response, error) {
	values, valueIsMulti := asValueSlice(input.Value)
	subjects, subjectIsMulti, err := asSubjectSlice(input.Subject)
	if err != nil {
		return nil, &InvalidResponseValueError{
			QuestionID:   input.QuestionID,
			QuestionType: question.Type,
			Reason:       err.Error(),
		}
	}

	if valueIsMulti != subjectIsMulti {
		return nil, &InvalidResponseValueError{
			QuestionID:   input.QuestionID,
			QuestionType: question.Type,
			Reason:       "subject and value must both be scalars or both be arrays",
		}
	}
	if len(values) != len(subjects) {
		return nil, &InvalidResponseValueError{
			QuestionID:   input.QuestionID,
			QuestionType: question.Type,
			Reason:       fmt.Sprintf("got %d subjects for %d values", len(subjects), len(values)),
		}
	}

	now := time.Now()
	atomics := make([]types.Response, len(values))
	for i, value := range values {
		if err := validateResponseValue(value, question); err != nil {
			return nil, err
		}
		atomics[i] = types.Response{
			QuestionID:   input.QuestionID,
			RespondentID: input.RespondentID,
			SubjectID:    subjects[i],
			SurveyID:     input.SurveyID,
			Value:        value,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return atomics, nil
}

func asValueSlice(value interface{}) (values []interface{}, isMulti bool) {
	if multi, ok := value.([]interface{}); ok {
		return multi, true
	}
	return []interface{}{value}, false
}

func asSubjectSlice(subject interface{}) (subjects []string, isMulti bool, err error) {
	switch v := subject.(type) {
	case string:
		return []string{v}, false, nil
	case []string:
		return v, true, nil
	case []interface{}:
		subjects = make([]string, len(v))
		for i, entry := range v {
			id, ok := entry.(string)
			if !ok {
				return nil, true, fmt.Errorf("subject entry %d is not an identity string", i)
			}
			subjects[i] = id
		}
		return subjects, true, nil
	default:
		return nil, false, fmt.Errorf("subject must be an identity string or an array of identity strings")
	}
}
