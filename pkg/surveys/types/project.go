package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	MongoID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        string             `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	ChapterID string             `bson:"chapterID" json:"chapterId"`
	CycleID   string             `bson:"cycleID" json:"cycleId"`
	PlayerIDs []string           `bson:"playerIDs" json:"playerIds"`

	// Set at most once each, when the corresponding survey is created.
	RetrospectiveSurveyID string `bson:"retrospectiveSurveyID,omitempty" json:"retrospectiveSurveyId,omitempty"`
	ProjectReviewSurveyID string `bson:"projectReviewSurveyID,omitempty" json:"projectReviewSurveyId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SurveyIDForKind returns the survey id the project already carries for the
// given survey kind, or an empty string.
func (p Project) SurveyIDForKind(kind string) string {
	switch kind {
	case SURVEY_KIND_RETROSPECTIVE:
		return p.RetrospectiveSurveyID
	case SURVEY_KIND_PROJECT_REVIEW:
		return p.ProjectReviewSurveyID
	default:
		return ""
	}
}
