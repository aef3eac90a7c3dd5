package surveys

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// AssembleSurvey builds and persists the survey of the given kind for a
// project: it resolves the kind's blueprint, expands every blueprint question
// into concrete question refs for this project's roster, saves the survey and
// records its id on the project.
//
// A project acquires each survey kind at most once; a second call fails with
// ErrSurveyAlreadyExists and leaves no trace.
func (s *Service) AssembleSurvey(project types.Project, surveyKind string) (*types.Survey, error) {
	if project.SurveyIDForKind(surveyKind) != "" {
		return nil, fmt.Errorf("%s survey for project %s: %w", surveyKind, project.Name, ErrSurveyAlreadyExists)
	}

	questionRefs, err := s.buildSurveyQuestionRefs(project, surveyKind)
	if err != nil {
		return nil, err
	}

	survey := &types.Survey{
		SurveyID:     uuid.NewString(),
		ProjectID:    project.ID,
		Kind:         surveyKind,
		QuestionRefs: questionRefs,
		CompletedBy:  []string{},
		CreatedAt:    time.Now(),
	}
	if err := s.surveys.SaveSurvey(survey); err != nil {
		return nil, fmt.Errorf("failed to save %s survey for project %s: %w", surveyKind, project.ID, err)
	}

	if err := s.projects.SetProjectSurveyID(project.ID, surveyKind, survey.SurveyID); err != nil {
		// the survey row is already saved; remove it again so a failed call
		// leaves no orphaned survey behind
		if delErr := s.surveys.DeleteSurveyBySurveyID(survey.SurveyID); delErr != nil {
			slog.Error("failed to delete orphaned survey", slog.String("surveyID", survey.SurveyID), slog.String("projectID", project.ID), slog.String("error", delErr.Error()))
		}
		return nil, fmt.Errorf("failed to record %s survey on project %s: %w", surveyKind, project.ID, err)
	}

	return survey, nil
}

func (s *Service) buildSurveyQuestionRefs(project types.Project, surveyKind string) ([]types.QuestionRef, error) {
	blueprint, err := s.blueprints.GetSurveyBlueprintByDescriptor(surveyKind)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s blueprint: %w", surveyKind, err)
	}

	defaults := blueprint.DefaultQuestionRefs
	if len(defaults) == 0 {
		return nil, fmt.Errorf("%s: %w", surveyKind, ErrEmptyBlueprint)
	}

	offsets := make(map[string]int, len(defaults))
	defaultsByQuestionID := make(map[string]types.QuestionRefDefault, len(defaults))
	questionIDs := make([]string, 0, len(defaults))
	for i, def := range defaults {
		if _, ok := offsets[def.QuestionID]; ok {
			continue
		}
		offsets[def.QuestionID] = i
		defaultsByQuestionID[def.QuestionID] = def
		questionIDs = append(questionIDs, def.QuestionID)
	}

	questions, err := s.questions.GetActiveQuestionsByIDs(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions for %s blueprint: %w", surveyKind, err)
	}

	// catalog fetch order is not guaranteed; the blueprint's array position is
	// the source of truth
	sort.SliceStable(questions, func(i, j int) bool {
		return offsets[questions[i].ID] < offsets[questions[j].ID]
	})

	questionRefs := []types.QuestionRef{}
	for _, question := range questions {
		shapes, err := buildQuestionRefShapes(surveyKind, question, project)
		if err != nil {
			return nil, err
		}
		def := defaultsByQuestionID[question.ID]
		for _, shape := range shapes {
			// explicit merge: identity and audience always come from the
			// builder, default metadata is copied from the blueprint
			questionRefs = append(questionRefs, types.QuestionRef{
				QuestionID: shape.questionID,
				SubjectIDs: shape.subjectIDs,
				Optional:   def.Optional,
			})
		}
	}

	return questionRefs, nil
}
