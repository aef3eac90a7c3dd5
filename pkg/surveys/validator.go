package surveys

import (
	"math"

	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

// validateResponseValue checks one atomic (scalar) value against the
// question's declared type. Array-shaped submissions are split before this is
// called, so an array here is always a shape error.
func validateResponseValue(value interface{}, question types.Question) error {
	switch question.Type {
	case types.QUESTION_TYPE_TEXT:
		if _, ok := value.(string); !ok {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected a string value",
			}
		}
		return nil

	case types.QUESTION_TYPE_NUMERIC:
		if _, ok := numericValue(value); !ok {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected a numeric value",
			}
		}
		return nil

	case types.QUESTION_TYPE_LIKERT_7_AGREEMENT:
		n, ok := numericValue(value)
		if !ok || n != math.Trunc(n) {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected an integer value",
			}
		}
		// 0 is an explicit "not applicable" answer
		if n < 0 || n > 7 {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected a value between 0 and 7",
			}
		}
		return nil

	case types.QUESTION_TYPE_PERCENTAGE, types.QUESTION_TYPE_RELATIVE_CONTRIBUTION:
		n, ok := numericValue(value)
		if !ok {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected a numeric value",
			}
		}
		if n < 0 || n > 100 {
			return &InvalidResponseValueError{
				QuestionID:   question.ID,
				QuestionType: question.Type,
				Reason:       "expected a value between 0 and 100",
			}
		}
		return nil

	default:
		return &InvalidResponseValueError{
			QuestionID:   question.ID,
			QuestionType: question.Type,
			Reason:       "unknown question type",
		}
	}
}

// numericValue converts the numeric types a decoded JSON or BSON payload can
// carry. Everything else is rejected.
func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
