package surveys

import (
	"errors"
	"time"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// in-memory store fakes used across the service tests

type fakeCatalog struct {
	questions map[string]types.Question
}

func (f *fakeCatalog) GetActiveQuestionsByIDs(ids []string) ([]types.Question, error) {
	result := []types.Question{}
	// deliberately walk the ids back to front: the assembler must not rely on
	// catalog fetch order
	for i := len(ids) - 1; i >= 0; i-- {
		q, ok := f.questions[ids[i]]
		if !ok || !q.Active {
			continue
		}
		result = append(result, q)
	}
	return result, nil
}

func (f *fakeCatalog) GetQuestionByID(id string) (types.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return types.Question{}, errors.New("question not found")
	}
	return q, nil
}

type fakeBlueprints struct {
	blueprints map[string]types.SurveyBlueprint
}

func (f *fakeBlueprints) GetSurveyBlueprintByDescriptor(descriptor string) (types.SurveyBlueprint, error) {
	bp, ok := f.blueprints[descriptor]
	if !ok {
		return types.SurveyBlueprint{}, errors.New("blueprint not found")
	}
	return bp, nil
}

type fakeSurveyStore struct {
	saved       []types.Survey
	deleted     []string
	completedBy map[string][]string
}

func (f *fakeSurveyStore) SaveSurvey(survey *types.Survey) error {
	f.saved = append(f.saved, *survey)
	return nil
}

func (f *fakeSurveyStore) DeleteSurveyBySurveyID(surveyID string) error {
	f.deleted = append(f.deleted, surveyID)
	return nil
}

func (f *fakeSurveyStore) MarkSurveyCompletedBy(surveyID string, respondentID string) error {
	if f.completedBy == nil {
		f.completedBy = map[string][]string{}
	}
	for _, existing := range f.completedBy[surveyID] {
		if existing == respondentID {
			return nil
		}
	}
	f.completedBy[surveyID] = append(f.completedBy[surveyID], respondentID)
	return nil
}

type fakeProjectStore struct {
	surveyIDs map[string]string // projectID|kind -> surveyID
}

func (f *fakeProjectStore) SetProjectSurveyID(projectID string, kind string, surveyID string) error {
	if f.surveyIDs == nil {
		f.surveyIDs = map[string]string{}
	}
	key := projectID + "|" + kind
	if _, ok := f.surveyIDs[key]; ok {
		return ErrSurveyAlreadyExists
	}
	f.surveyIDs[key] = surveyID
	return nil
}

type fakeResponseStore struct {
	rows []types.Response
}

func naturalKey(r types.Response) string {
	return r.QuestionID + "|" + r.SubjectID + "|" + r.SurveyID
}

func (f *fakeResponseStore) UpsertSurveyResponse(response types.Response) (types.Response, error) {
	key := naturalKey(response)
	for i, existing := range f.rows {
		if existing.SurveyID != "" && naturalKey(existing) == key {
			existing.RespondentID = response.RespondentID
			existing.Value = response.Value
			existing.UpdatedAt = time.Now()
			f.rows[i] = existing
			return existing, nil
		}
	}
	now := time.Now()
	response.CreatedAt = now
	response.UpdatedAt = now
	f.rows = append(f.rows, response)
	return response, nil
}

func (f *fakeResponseStore) InsertResponse(response types.Response) (types.Response, error) {
	now := time.Now()
	response.CreatedAt = now
	response.UpdatedAt = now
	f.rows = append(f.rows, response)
	return response, nil
}
