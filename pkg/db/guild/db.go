package guild

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guild-framework/guild-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_PROJECTS          = "projects"
	COLLECTION_NAME_QUESTIONS         = "questions"
	COLLECTION_NAME_SURVEY_BLUEPRINTS = "surveyBlueprints"
	COLLECTION_NAME_SURVEYS           = "surveys"
	COLLECTION_NAME_RESPONSES         = "responses"
)

type GuildDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewGuildDBService(configs db.DBConfig) (*GuildDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	guildDBSc := &GuildDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if err := guildDBSc.ensureIndexes(); err != nil {
		slog.Error("Error ensuring indexes for guild DB", slog.String("error", err.Error()))
	}

	return guildDBSc, nil
}

func (dbService *GuildDBService) getDBName() string {
	return dbService.DBNamePrefix + "guildDB"
}

func (dbService *GuildDBService) collectionProjects() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_PROJECTS)
}

func (dbService *GuildDBService) collectionQuestions() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_QUESTIONS)
}

func (dbService *GuildDBService) collectionSurveyBlueprints() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SURVEY_BLUEPRINTS)
}

func (dbService *GuildDBService) collectionSurveys() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_SURVEYS)
}

func (dbService *GuildDBService) collectionResponses() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *GuildDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *GuildDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for guild DB")
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionProjects().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "chapterID", Value: 1},
				{Key: "cycleID", Value: 1},
			},
		},
	})
	if err != nil {
		slog.Error("Error creating indexes for projects", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionQuestions().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		slog.Error("Error creating index for questions", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionSurveyBlueprints().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "descriptor", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		slog.Error("Error creating index for survey blueprints", slog.String("error", err.Error()))
	}

	_, err = dbService.collectionSurveys().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "surveyID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		slog.Error("Error creating index for surveys", slog.String("error", err.Error()))
	}

	// survey-scoped responses are unique per natural key; ad hoc responses
	// (no surveyID) are excluded through the partial filter
	_, err = dbService.collectionResponses().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "questionID", Value: 1},
				{Key: "subjectID", Value: 1},
				{Key: "surveyID", Value: 1},
			},
			Options: options.Index().
				SetName("questionID_subjectID_surveyID_1").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"surveyID": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "surveyID", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "respondentID", Value: 1}},
		},
	})
	if err != nil {
		slog.Error("Error creating indexes for responses", slog.String("error", err.Error()))
	}

	return nil
}
