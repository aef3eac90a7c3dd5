package surveys

import (
	"errors"
	"testing"
	"time"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func newRecorderService(questions map[string]types.Question) (*Service, *fakeResponseStore) {
	responseStore := &fakeResponseStore{}
	service := NewService(
		&fakeCatalog{questions: questions},
		&fakeBlueprints{},
		&fakeSurveyStore{},
		&fakeProjectStore{},
		responseStore,
	)
	return service, responseStore
}

func TestSaveResponse(t *testing.T) {
	questions := map[string]types.Question{
		"Q1": {ID: "Q1", Active: true, SubjectType: types.SUBJECT_TYPE_PLAYER, Type: types.QUESTION_TYPE_NUMERIC},
		"Q2": {ID: "Q2", Active: true, SubjectType: types.SUBJECT_TYPE_PLAYER, Type: types.QUESTION_TYPE_RELATIVE_CONTRIBUTION},
		"Q3": {ID: "Q3", Active: true, SubjectType: types.SUBJECT_TYPE_PROJECT, Type: types.QUESTION_TYPE_TEXT},
	}

	t.Run("resubmission updates the existing row", func(t *testing.T) {
		service, store := newRecorderService(questions)

		first, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q1",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        float64(5),
		}, nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(first) != 1 {
			t.Errorf("unexpected number of saved rows: %d", len(first))
			return
		}

		time.Sleep(5 * time.Millisecond)

		second, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q1",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        float64(7),
		}, nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		if len(store.rows) != 1 {
			t.Errorf("expected exactly one row per natural key, got %d", len(store.rows))
			return
		}
		row := store.rows[0]
		if row.Value != float64(7) {
			t.Errorf("row should carry the latest value, got %v", row.Value)
		}
		if !row.UpdatedAt.After(row.CreatedAt) {
			t.Errorf("updatedAt (%v) should be refreshed past createdAt (%v)", row.UpdatedAt, row.CreatedAt)
		}
		if len(second) != 1 || second[0].Value != float64(7) {
			t.Errorf("unexpected returned rows: %v", second)
		}
	})

	t.Run("multi-value submission fans out", func(t *testing.T) {
		service, store := newRecorderService(questions)

		saved, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q2",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      []interface{}{"A", "B"},
			Value:        []interface{}{float64(60), float64(40)},
		}, nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(saved) != 2 || len(store.rows) != 2 {
			t.Errorf("expected two independent rows, got %d saved, %d stored", len(saved), len(store.rows))
			return
		}
		if store.rows[0].SubjectID != "A" || store.rows[0].Value != float64(60) {
			t.Errorf("unexpected first row: %+v", store.rows[0])
		}
		if store.rows[1].SubjectID != "B" || store.rows[1].Value != float64(40) {
			t.Errorf("unexpected second row: %+v", store.rows[1])
		}
	})

	t.Run("mismatched subject and value lengths", func(t *testing.T) {
		service, store := newRecorderService(questions)

		_, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q2",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      []interface{}{"A", "B", "C"},
			Value:        []interface{}{float64(60), float64(40)},
		}, nil)
		var invalidErr *InvalidResponseValueError
		if !errors.As(err, &invalidErr) {
			t.Errorf("expected InvalidResponseValueError, got %v", err)
		}
		if len(store.rows) != 0 {
			t.Error("nothing may be persisted for an invalid submission")
		}
	})

	t.Run("array value with scalar subject", func(t *testing.T) {
		service, _ := newRecorderService(questions)

		_, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q2",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        []interface{}{float64(60), float64(40)},
		}, nil)
		var invalidErr *InvalidResponseValueError
		if !errors.As(err, &invalidErr) {
			t.Errorf("expected InvalidResponseValueError, got %v", err)
		}
	})

	t.Run("invalid value is never persisted", func(t *testing.T) {
		service, store := newRecorderService(questions)

		_, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q1",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        "not a number",
		}, nil)
		var invalidErr *InvalidResponseValueError
		if !errors.As(err, &invalidErr) {
			t.Errorf("expected InvalidResponseValueError, got %v", err)
		}
		if len(store.rows) != 0 {
			t.Error("nothing may be persisted for an invalid submission")
		}
	})

	t.Run("ad hoc responses are never deduplicated", func(t *testing.T) {
		service, store := newRecorderService(questions)

		input := types.ResponseInput{
			QuestionID:   "Q3",
			RespondentID: "A",
			Subject:      "P1",
			Value:        "spontaneous feedback",
		}
		if _, err := service.SaveResponse(input, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if _, err := service.SaveResponse(input, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(store.rows) != 2 {
			t.Errorf("ad hoc submissions must always insert, got %d rows", len(store.rows))
		}
	})

	t.Run("pre-resolved question skips the catalog", func(t *testing.T) {
		// no catalog entries at all: the lookup would fail
		service, store := newRecorderService(map[string]types.Question{})

		question := types.Question{ID: "Q9", Active: true, Type: types.QUESTION_TYPE_TEXT}
		_, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "Q9",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        "fine",
		}, &question)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(store.rows) != 1 {
			t.Errorf("expected one row, got %d", len(store.rows))
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		service, _ := newRecorderService(questions)

		_, err := service.SaveResponse(types.ResponseInput{
			QuestionID:   "missing",
			RespondentID: "A",
			SurveyID:     "S1",
			Subject:      "A",
			Value:        "fine",
		}, nil)
		if err == nil {
			t.Error("should produce error")
		}
	})
}
