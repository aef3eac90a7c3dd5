package surveys

import (
	"errors"
	"fmt"
)

var (
	// ErrSurveyAlreadyExists signals that the project already carries a survey
	// of the requested kind. The caller must not retry.
	ErrSurveyAlreadyExists = errors.New("survey already exists for project")

	// ErrEmptyBlueprint signals a misconfigured blueprint without any default
	// question refs.
	ErrEmptyBlueprint = errors.New("survey blueprint has no default question refs")
)

// UnsupportedQuestionConfigurationError is returned when a question's subject
// type has no expansion rule for the requested survey kind. This is a data
// misconfiguration, not a transient fault.
type UnsupportedQuestionConfigurationError struct {
	SurveyKind  string
	QuestionID  string
	SubjectType string
}

func (e *UnsupportedQuestionConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %s survey question subject type: %s for question %s", e.SurveyKind, e.SubjectType, e.QuestionID)
}

// InvalidResponseValueError is returned when a submitted response value does
// not match the question's declared type. It is never persisted.
type InvalidResponseValueError struct {
	QuestionID   string
	QuestionType string
	Reason       string
}

func (e *InvalidResponseValueError) Error() string {
	return fmt.Sprintf("invalid response value for question %s (%s): %s", e.QuestionID, e.QuestionType, e.Reason)
}
