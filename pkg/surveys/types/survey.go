package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey kinds select which question-ref expansion rules apply.
const (
	SURVEY_KIND_RETROSPECTIVE  = "retrospective"
	SURVEY_KIND_PROJECT_REVIEW = "projectReview"
)

// SurveyBlueprint is the immutable template for one survey kind. The order of
// DefaultQuestionRefs defines the presentation order of the questions.
type SurveyBlueprint struct {
	MongoID             primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	Descriptor          string               `bson:"descriptor" json:"descriptor"`
	DefaultQuestionRefs []QuestionRefDefault `bson:"defaultQuestionRefs" json:"defaultQuestionRefs"`
}

// QuestionRefDefault carries the per-question default metadata a blueprint
// declares for its question refs.
type QuestionRefDefault struct {
	QuestionID string `bson:"questionId" json:"questionId"`
	Optional   bool   `bson:"optional,omitempty" json:"optional,omitempty"`
}

// QuestionRef binds one catalog question to the audience that must answer it
// within one survey instance.
type QuestionRef struct {
	QuestionID string   `bson:"questionId" json:"questionId"`
	SubjectIDs []string `bson:"subjectIds" json:"subjectIds"`
	Optional   bool     `bson:"optional,omitempty" json:"optional,omitempty"`
}

type Survey struct {
	MongoID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SurveyID     string             `bson:"surveyID" json:"surveyId"`
	ProjectID    string             `bson:"projectID" json:"projectId"`
	Kind         string             `bson:"kind" json:"kind"`
	QuestionRefs []QuestionRef      `bson:"questionRefs" json:"questionRefs"`
	CompletedBy  []string           `bson:"completedBy" json:"completedBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
