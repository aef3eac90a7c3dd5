package main

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
	"github.com/guild-framework/guild-backend/pkg/utils"
)

const DEFAULT_CONCURRENCY = 4

var supportedSurveyKinds = []string{
	types.SURVEY_KIND_RETROSPECTIVE,
	types.SURVEY_KIND_PROJECT_REVIEW,
}

func main() {
	runID := uuid.NewString()
	logger := slog.Default().With(slog.String("runID", runID))

	logger.Info("Starting cycle launch job", slog.String("chapterID", conf.CycleLaunch.ChapterID), slog.String("cycleID", conf.CycleLaunch.CycleID))
	start := time.Now()

	surveyKinds := conf.CycleLaunch.SurveyKinds
	if len(surveyKinds) == 0 {
		surveyKinds = supportedSurveyKinds
	}
	for _, kind := range surveyKinds {
		if !utils.ContainsString(supportedSurveyKinds, kind) {
			logger.Error("Unsupported survey kind in config", slog.String("kind", kind))
			return
		}
	}

	projects, err := guildDBService.FindProjectsForCycle(conf.CycleLaunch.ChapterID, conf.CycleLaunch.CycleID)
	if err != nil {
		logger.Error("Failed to find projects for cycle", slog.String("error", err.Error()))
		return
	}
	if len(projects) == 0 {
		logger.Warn("No projects found for cycle")
		return
	}

	concurrency := conf.CycleLaunch.Concurrency
	if concurrency < 1 {
		concurrency = DEFAULT_CONCURRENCY
	}

	// assemble surveys for distinct projects in parallel; a failed project
	// must not stop the others
	var (
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, concurrency)
		mu        sync.Mutex
		failed    int
	)
	for _, project := range projects {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(project types.Project) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := createSurveysForProject(logger, project, surveyKinds); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(project)
	}
	wg.Wait()

	logger.Info("Cycle launch job completed",
		slog.Int("projects", len(projects)),
		slog.Int("failed", failed),
		slog.String("duration", time.Since(start).String()),
	)
}

// createSurveysForProject assembles every requested survey kind for one
// project, sequentially. The first failing kind aborts this project.
func createSurveysForProject(logger *slog.Logger, project types.Project, surveyKinds []string) error {
	for _, kind := range surveyKinds {
		survey, err := surveyService.AssembleSurvey(project, kind)
		if err != nil {
			logger.Error("Failed to assemble survey",
				slog.String("projectID", project.ID),
				slog.String("projectName", project.Name),
				slog.String("kind", kind),
				slog.String("error", err.Error()),
			)
			return err
		}
		logger.Info("Survey created",
			slog.String("projectID", project.ID),
			slog.String("kind", kind),
			slog.String("surveyID", survey.SurveyID),
			slog.Int("questionRefs", len(survey.QuestionRefs)),
		)
	}
	return nil
}
