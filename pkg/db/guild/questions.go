package guild

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// GetActiveQuestionsByIDs fetches the active questions among the given ids.
// Retired questions are excluded; the result order is not guaranteed to match
// the input order.
func (dbService *GuildDBService) GetActiveQuestionsByIDs(ids []string) (questions []types.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"id":     bson.M{"$in": ids},
		"active": true,
	}

	cursor, err := dbService.collectionQuestions().Find(ctx, filter)
	if err != nil {
		return questions, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questions)
	return questions, err
}

func (dbService *GuildDBService) GetQuestionByID(id string) (question types.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"id": id}
	err = dbService.collectionQuestions().FindOne(ctx, filter).Decode(&question)
	return question, err
}

func (dbService *GuildDBService) SaveQuestion(question types.Question) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionQuestions().InsertOne(ctx, question)
	return err
}
