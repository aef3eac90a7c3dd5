package surveys

import (
	"fmt"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// questionRefShape is the builder output before blueprint defaults are merged
// in. SubjectIDs always come from the builder, never from a default.
type questionRefShape struct {
	questionID string
	subjectIDs []string
}

// buildQuestionRefShapes expands one (question, project) pair into the refs
// the survey needs for it. Dispatch is an exhaustive switch on the survey
// kind, each arm switching on the question's subject type; new kinds or
// subject types get their own case.
func buildQuestionRefShapes(surveyKind string, question types.Question, project types.Project) ([]questionRefShape, error) {
	switch surveyKind {
	case types.SURVEY_KIND_PROJECT_REVIEW:
		return buildProjectReviewRefShapes(question, project)
	case types.SURVEY_KIND_RETROSPECTIVE:
		return buildRetrospectiveRefShapes(question, project)
	default:
		return nil, fmt.Errorf("unknown survey kind: %s", surveyKind)
	}
}

func buildProjectReviewRefShapes(question types.Question, project types.Project) ([]questionRefShape, error) {
	switch question.SubjectType {
	case types.SUBJECT_TYPE_PROJECT:
		return []questionRefShape{
			{
				questionID: question.ID,
				subjectIDs: []string{project.ID},
			},
		}, nil
	default:
		return nil, &UnsupportedQuestionConfigurationError{
			SurveyKind:  types.SURVEY_KIND_PROJECT_REVIEW,
			QuestionID:  question.ID,
			SubjectType: question.SubjectType,
		}
	}
}

func buildRetrospectiveRefShapes(question types.Question, project types.Project) ([]questionRefShape, error) {
	switch question.SubjectType {
	case types.SUBJECT_TYPE_TEAM:
		// one shared ref covering the whole roster, in roster order
		return []questionRefShape{
			{
				questionID: question.ID,
				subjectIDs: project.PlayerIDs,
			},
		}, nil
	case types.SUBJECT_TYPE_PLAYER:
		// fan-out: every player gets their own ref
		shapes := make([]questionRefShape, len(project.PlayerIDs))
		for i, playerID := range project.PlayerIDs {
			shapes[i] = questionRefShape{
				questionID: question.ID,
				subjectIDs: []string{playerID},
			}
		}
		return shapes, nil
	case types.SUBJECT_TYPE_PROJECT:
		return []questionRefShape{
			{
				questionID: question.ID,
				subjectIDs: []string{project.ID},
			},
		}, nil
	default:
		return nil, &UnsupportedQuestionConfigurationError{
			SurveyKind:  types.SURVEY_KIND_RETROSPECTIVE,
			QuestionID:  question.ID,
			SubjectType: question.SubjectType,
		}
	}
}
