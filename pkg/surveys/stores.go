package surveys

import (
	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// Store interfaces implemented by pkg/db/guild (and by in-memory fakes in
// tests). The service only depends on these, never on the mongo driver.

type QuestionCatalog interface {
	GetActiveQuestionsByIDs(ids []string) ([]types.Question, error)
	GetQuestionByID(id string) (types.Question, error)
}

type BlueprintCatalog interface {
	GetSurveyBlueprintByDescriptor(descriptor string) (types.SurveyBlueprint, error)
}

type SurveyStore interface {
	SaveSurvey(survey *types.Survey) error
	DeleteSurveyBySurveyID(surveyID string) error
	MarkSurveyCompletedBy(surveyID string, respondentID string) error
}

type ProjectStore interface {
	// SetProjectSurveyID records the survey id on the project for the given
	// kind. It must only succeed if the kind's field is still unset and return
	// ErrSurveyAlreadyExists otherwise.
	SetProjectSurveyID(projectID string, kind string, surveyID string) error
}

type ResponseStore interface {
	// UpsertSurveyResponse inserts or merges an atomic survey-scoped response
	// by its (questionID, subjectID, surveyID) natural key in a single
	// conditional write.
	UpsertSurveyResponse(response types.Response) (types.Response, error)

	// InsertResponse always inserts a new row (ad hoc responses).
	InsertResponse(response types.Response) (types.Response, error)
}
