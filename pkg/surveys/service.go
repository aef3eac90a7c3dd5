package surveys

import (
	"log/slog"
)

// Service bundles the survey assembly and response recording engines with the
// stores they work against. All dependencies are passed in explicitly so tests
// can substitute in-memory fakes.
type Service struct {
	questions  QuestionCatalog
	blueprints BlueprintCatalog
	surveys    SurveyStore
	projects   ProjectStore
	responses  ResponseStore
}

func NewService(
	questions QuestionCatalog,
	blueprints BlueprintCatalog,
	surveys SurveyStore,
	projects ProjectStore,
	responses ResponseStore,
) *Service {
	return &Service{
		questions:  questions,
		blueprints: blueprints,
		surveys:    surveys,
		projects:   projects,
		responses:  responses,
	}
}

// MarkSurveyCompletedBy records that a respondent finished the survey. Calling
// it twice for the same respondent is a no-op.
func (s *Service) MarkSurveyCompletedBy(surveyID string, respondentID string) error {
	err := s.surveys.MarkSurveyCompletedBy(surveyID, respondentID)
	if err != nil {
		slog.Error("failed to mark survey completed", slog.String("surveyID", surveyID), slog.String("respondentID", respondentID), slog.String("error", err.Error()))
		return err
	}
	return nil
}
