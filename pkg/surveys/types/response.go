package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is one atomic persisted answer: one subject, one value. Rows that
// carry a SurveyID are unique per (questionID, subjectID, surveyID); ad hoc
// rows without a SurveyID are never deduplicated.
type Response struct {
	MongoID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	QuestionID   string             `bson:"questionID" json:"questionId"`
	RespondentID string             `bson:"respondentID" json:"respondentId"`
	SubjectID    string             `bson:"subjectID" json:"subjectId"`
	SurveyID     string             `bson:"surveyID,omitempty" json:"surveyId,omitempty"`
	Value        interface{}        `bson:"value" json:"value"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResponseInput is the submission boundary shape. Subject and Value may each
// be a scalar or an array; array values are zipped positionally with array
// subjects into atomic Response rows.
type ResponseInput struct {
	QuestionID   string      `json:"questionId"`
	RespondentID string      `json:"respondentId"`
	SurveyID     string      `json:"surveyId,omitempty"`
	Subject      interface{} `json:"subject"`
	Value        interface{} `json:"value"`
}
