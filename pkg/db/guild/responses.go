package guild

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// UpsertSurveyResponse inserts or merges an atomic survey-scoped response in
// one conditional write keyed by (questionID, subjectID, surveyID). The unique
// partial index on the collection backs this under concurrent submission:
// there is never more than one row per natural key.
func (dbService *GuildDBService) UpsertSurveyResponse(response types.Response) (types.Response, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"questionID": response.QuestionID,
		"subjectID":  response.SubjectID,
		"surveyID":   response.SurveyID,
	}
	update := bson.M{
		"$set": bson.M{
			"respondentID": response.RespondentID,
			"value":        response.Value,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"questionID": response.QuestionID,
			"subjectID":  response.SubjectID,
			"surveyID":   response.SurveyID,
			"createdAt":  now,
		},
	}

	var saved types.Response
	err := dbService.collectionResponses().FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return saved, err
	}
	return saved, nil
}

// InsertResponse always creates a new row; used for ad hoc responses that are
// not scoped to a survey and therefore never deduplicated.
func (dbService *GuildDBService) InsertResponse(response types.Response) (types.Response, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	response.CreatedAt = now
	response.UpdatedAt = now

	ret, err := dbService.collectionResponses().InsertOne(ctx, response)
	if err != nil {
		return response, err
	}
	response.MongoID = ret.InsertedID.(primitive.ObjectID)
	return response, nil
}

// GetResponsesForSurvey returns all responses recorded for one survey.
func (dbService *GuildDBService) GetResponsesForSurvey(surveyID string) (responses []types.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}

	cursor, err := dbService.collectionResponses().Find(ctx, filter)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

// GetResponseCountForSurvey counts the responses recorded for one survey.
func (dbService *GuildDBService) GetResponseCountForSurvey(surveyID string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{"surveyID": surveyID})
}
