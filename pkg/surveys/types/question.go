package types

// Subject types describe who (or what) a question is about.
const (
	SUBJECT_TYPE_PROJECT = "project"
	SUBJECT_TYPE_TEAM    = "team"
	SUBJECT_TYPE_PLAYER  = "player"
)

// Response value kinds a question can declare.
const (
	QUESTION_TYPE_TEXT                  = "text"
	QUESTION_TYPE_NUMERIC               = "numeric"
	QUESTION_TYPE_LIKERT_7_AGREEMENT    = "likert7Agreement"
	QUESTION_TYPE_PERCENTAGE            = "percentage"
	QUESTION_TYPE_RELATIVE_CONTRIBUTION = "relativeContribution"
)

type Question struct {
	ID          string `bson:"id" json:"id"`
	Active      bool   `bson:"active" json:"active"`
	SubjectType string `bson:"subjectType" json:"subjectType"`
	Type        string `bson:"type" json:"type"`
	Body        string `bson:"body" json:"body"`
}
