package guild

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func (dbService *GuildDBService) SaveSurvey(survey *types.Survey) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionSurveys().InsertOne(ctx, survey)
	if err != nil {
		return err
	}
	survey.MongoID = ret.InsertedID.(primitive.ObjectID)

	return nil
}

func (dbService *GuildDBService) GetSurveyBySurveyID(surveyID string) (survey types.Survey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	err = dbService.collectionSurveys().FindOne(ctx, filter).Decode(&survey)
	return survey, err
}

func (dbService *GuildDBService) DeleteSurveyBySurveyID(surveyID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	res, err := dbService.collectionSurveys().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkSurveyCompletedBy adds the respondent to the survey's completedBy list
// if not present yet.
func (dbService *GuildDBService) MarkSurveyCompletedBy(surveyID string, respondentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"surveyID": surveyID}
	update := bson.M{"$addToSet": bson.M{"completedBy": respondentID}}

	res, err := dbService.collectionSurveys().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
