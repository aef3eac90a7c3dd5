package guild

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guild-framework/guild-backend/pkg/surveys"
	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func (dbService *GuildDBService) SaveProject(project types.Project) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionProjects().InsertOne(ctx, project)
	return err
}

func (dbService *GuildDBService) GetProjectByID(id string) (project types.Project, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"id": id}
	err = dbService.collectionProjects().FindOne(ctx, filter).Decode(&project)
	return project, err
}

// FindProjectsForCycle returns all projects of a cycle within a chapter.
func (dbService *GuildDBService) FindProjectsForCycle(chapterID string, cycleID string) (projects []types.Project, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"chapterID": chapterID,
		"cycleID":   cycleID,
	}

	cursor, err := dbService.collectionProjects().Find(ctx, filter)
	if err != nil {
		return projects, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &projects)
	return projects, err
}

// UpdateProject applies a merge patch onto the project document.
func (dbService *GuildDBService) UpdateProject(id string, patch bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	patch["updatedAt"] = time.Now()
	update := bson.M{"$set": patch}

	res, err := dbService.collectionProjects().UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetProjectSurveyID records a survey id on the project for the given kind.
// The update only matches while the kind's field is still unset, so a project
// acquires each survey kind at most once even under concurrent assembly.
func (dbService *GuildDBService) SetProjectSurveyID(projectID string, kind string, surveyID string) error {
	field, err := surveyIDFieldForKind(kind)
	if err != nil {
		return err
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"id":  projectID,
		field: bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		field:       surveyID,
		"updatedAt": time.Now(),
	}}

	res, err := dbService.collectionProjects().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either the project does not exist or it already carries this kind's
		// survey id; distinguish the two for the caller
		count, countErr := dbService.collectionProjects().CountDocuments(ctx, bson.M{"id": projectID})
		if countErr != nil {
			return countErr
		}
		if count == 0 {
			return mongo.ErrNoDocuments
		}
		return surveys.ErrSurveyAlreadyExists
	}
	return nil
}

func surveyIDFieldForKind(kind string) (string, error) {
	switch kind {
	case types.SURVEY_KIND_RETROSPECTIVE:
		return "retrospectiveSurveyID", nil
	case types.SURVEY_KIND_PROJECT_REVIEW:
		return "projectReviewSurveyID", nil
	default:
		return "", fmt.Errorf("unknown survey kind: %s", kind)
	}
}
