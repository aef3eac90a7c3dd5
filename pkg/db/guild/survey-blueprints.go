package guild

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func (dbService *GuildDBService) GetSurveyBlueprintByDescriptor(descriptor string) (blueprint types.SurveyBlueprint, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"descriptor": descriptor}
	err = dbService.collectionSurveyBlueprints().FindOne(ctx, filter).Decode(&blueprint)
	return blueprint, err
}

func (dbService *GuildDBService) SaveSurveyBlueprint(blueprint types.SurveyBlueprint) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSurveyBlueprints().InsertOne(ctx, blueprint)
	return err
}
