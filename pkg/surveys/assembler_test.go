package surveys

import (
	"errors"
	"testing"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func newTestService(questions map[string]types.Question, blueprints map[string]types.SurveyBlueprint) (*Service, *fakeSurveyStore, *fakeProjectStore) {
	surveyStore := &fakeSurveyStore{}
	projectStore := &fakeProjectStore{}
	service := NewService(
		&fakeCatalog{questions: questions},
		&fakeBlueprints{blueprints: blueprints},
		surveyStore,
		projectStore,
		&fakeResponseStore{},
	)
	return service, surveyStore, projectStore
}

func TestAssembleSurvey(t *testing.T) {
	questions := map[string]types.Question{
		"Q1": {ID: "Q1", Active: true, SubjectType: types.SUBJECT_TYPE_TEAM, Type: types.QUESTION_TYPE_TEXT},
		"Q2": {ID: "Q2", Active: true, SubjectType: types.SUBJECT_TYPE_PLAYER, Type: types.QUESTION_TYPE_LIKERT_7_AGREEMENT},
		"Q3": {ID: "Q3", Active: true, SubjectType: types.SUBJECT_TYPE_PROJECT, Type: types.QUESTION_TYPE_TEXT},
		"Q4": {ID: "Q4", Active: true, SubjectType: types.SUBJECT_TYPE_PROJECT, Type: types.QUESTION_TYPE_PERCENTAGE},
	}
	retroBlueprint := types.SurveyBlueprint{
		Descriptor: types.SURVEY_KIND_RETROSPECTIVE,
		DefaultQuestionRefs: []types.QuestionRefDefault{
			{QuestionID: "Q1"},
			{QuestionID: "Q2", Optional: true},
			{QuestionID: "Q3"},
		},
	}
	reviewBlueprint := types.SurveyBlueprint{
		Descriptor: types.SURVEY_KIND_PROJECT_REVIEW,
		DefaultQuestionRefs: []types.QuestionRefDefault{
			{QuestionID: "Q4"},
		},
	}
	project := types.Project{
		ID:        "P1",
		Name:      "antelope",
		PlayerIDs: []string{"A", "B", "C"},
	}

	t.Run("retrospective expansion preserves blueprint order", func(t *testing.T) {
		service, surveyStore, projectStore := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_RETROSPECTIVE: retroBlueprint,
		})

		survey, err := service.AssembleSurvey(project, types.SURVEY_KIND_RETROSPECTIVE)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		// Q1 (team) -> 1 ref, Q2 (player) -> 3 refs, Q3 (project) -> 1 ref
		wantQuestionIDs := []string{"Q1", "Q2", "Q2", "Q2", "Q3"}
		if len(survey.QuestionRefs) != len(wantQuestionIDs) {
			t.Errorf("unexpected number of question refs: %d", len(survey.QuestionRefs))
			return
		}
		for i, ref := range survey.QuestionRefs {
			if ref.QuestionID != wantQuestionIDs[i] {
				t.Errorf("ref %d: got question %s, want %s", i, ref.QuestionID, wantQuestionIDs[i])
			}
		}

		if len(survey.QuestionRefs[0].SubjectIDs) != 3 {
			t.Errorf("team ref should target the whole roster, got %v", survey.QuestionRefs[0].SubjectIDs)
		}
		seen := map[string]bool{}
		for _, ref := range survey.QuestionRefs[1:4] {
			if !ref.Optional {
				t.Errorf("default metadata not merged onto ref %v", ref)
			}
			if len(ref.SubjectIDs) != 1 {
				t.Errorf("player ref should have a single subject, got %v", ref.SubjectIDs)
				continue
			}
			if seen[ref.SubjectIDs[0]] {
				t.Errorf("player %s covered twice", ref.SubjectIDs[0])
			}
			seen[ref.SubjectIDs[0]] = true
		}
		if len(seen) != 3 {
			t.Errorf("fan-out should cover all players exactly once, got %v", seen)
		}

		if survey.CompletedBy == nil || len(survey.CompletedBy) != 0 {
			t.Errorf("new survey should start with empty completedBy, got %v", survey.CompletedBy)
		}
		if len(surveyStore.saved) != 1 {
			t.Errorf("expected exactly one survey row, got %d", len(surveyStore.saved))
		}
		if got := projectStore.surveyIDs["P1|"+types.SURVEY_KIND_RETROSPECTIVE]; got != survey.SurveyID {
			t.Errorf("survey id not recorded on project: %s", got)
		}
	})

	t.Run("second assembly fails without side effects", func(t *testing.T) {
		service, surveyStore, projectStore := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_RETROSPECTIVE: retroBlueprint,
		})

		first, err := service.AssembleSurvey(project, types.SURVEY_KIND_RETROSPECTIVE)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		alreadyAssembled := project
		alreadyAssembled.RetrospectiveSurveyID = first.SurveyID

		_, err = service.AssembleSurvey(alreadyAssembled, types.SURVEY_KIND_RETROSPECTIVE)
		if !errors.Is(err, ErrSurveyAlreadyExists) {
			t.Errorf("expected ErrSurveyAlreadyExists, got %v", err)
		}
		if len(surveyStore.saved) != 1 {
			t.Errorf("second call must not create a survey row, got %d", len(surveyStore.saved))
		}
		if got := projectStore.surveyIDs["P1|"+types.SURVEY_KIND_RETROSPECTIVE]; got != first.SurveyID {
			t.Errorf("project mutation from second call: %s", got)
		}
	})

	t.Run("stale project snapshot is caught by the store", func(t *testing.T) {
		// the caller's project copy does not carry the survey id yet, but the
		// store already does
		service, surveyStore, projectStore := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_RETROSPECTIVE: retroBlueprint,
		})
		projectStore.surveyIDs = map[string]string{"P1|" + types.SURVEY_KIND_RETROSPECTIVE: "existing"}

		_, err := service.AssembleSurvey(project, types.SURVEY_KIND_RETROSPECTIVE)
		if !errors.Is(err, ErrSurveyAlreadyExists) {
			t.Errorf("expected ErrSurveyAlreadyExists, got %v", err)
		}
		// the saved survey must have been cleaned up again
		if len(surveyStore.saved) != 1 || len(surveyStore.deleted) != 1 {
			t.Errorf("expected save followed by compensating delete, got saved=%d deleted=%d", len(surveyStore.saved), len(surveyStore.deleted))
			return
		}
		if surveyStore.deleted[0] != surveyStore.saved[0].SurveyID {
			t.Errorf("deleted wrong survey: %s", surveyStore.deleted[0])
		}
	})

	t.Run("project review", func(t *testing.T) {
		service, _, _ := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_PROJECT_REVIEW: reviewBlueprint,
		})

		survey, err := service.AssembleSurvey(project, types.SURVEY_KIND_PROJECT_REVIEW)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(survey.QuestionRefs) != 1 {
			t.Errorf("unexpected number of refs: %d", len(survey.QuestionRefs))
			return
		}
		ref := survey.QuestionRefs[0]
		if ref.QuestionID != "Q4" || len(ref.SubjectIDs) != 1 || ref.SubjectIDs[0] != "P1" {
			t.Errorf("unexpected ref: %v", ref)
		}
	})

	t.Run("empty blueprint", func(t *testing.T) {
		service, surveyStore, _ := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_RETROSPECTIVE: {
				Descriptor: types.SURVEY_KIND_RETROSPECTIVE,
			},
		})

		_, err := service.AssembleSurvey(project, types.SURVEY_KIND_RETROSPECTIVE)
		if !errors.Is(err, ErrEmptyBlueprint) {
			t.Errorf("expected ErrEmptyBlueprint, got %v", err)
		}
		if len(surveyStore.saved) != 0 {
			t.Error("no survey row may be created for an empty blueprint")
		}
	})

	t.Run("misconfigured question aborts assembly", func(t *testing.T) {
		service, surveyStore, _ := newTestService(questions, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_PROJECT_REVIEW: {
				Descriptor: types.SURVEY_KIND_PROJECT_REVIEW,
				DefaultQuestionRefs: []types.QuestionRefDefault{
					{QuestionID: "Q2"}, // player subject, unsupported for reviews
				},
			},
		})

		_, err := service.AssembleSurvey(project, types.SURVEY_KIND_PROJECT_REVIEW)
		var confErr *UnsupportedQuestionConfigurationError
		if !errors.As(err, &confErr) {
			t.Errorf("expected UnsupportedQuestionConfigurationError, got %v", err)
		}
		if len(surveyStore.saved) != 0 {
			t.Error("no survey row may be created when expansion fails")
		}
	})

	t.Run("inactive questions are skipped", func(t *testing.T) {
		withInactive := map[string]types.Question{}
		for id, q := range questions {
			withInactive[id] = q
		}
		retired := withInactive["Q3"]
		retired.Active = false
		withInactive["Q3"] = retired

		service, _, _ := newTestService(withInactive, map[string]types.SurveyBlueprint{
			types.SURVEY_KIND_RETROSPECTIVE: retroBlueprint,
		})

		survey, err := service.AssembleSurvey(project, types.SURVEY_KIND_RETROSPECTIVE)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		for _, ref := range survey.QuestionRefs {
			if ref.QuestionID == "Q3" {
				t.Error("retired question must not be expanded")
			}
		}
	})
}
