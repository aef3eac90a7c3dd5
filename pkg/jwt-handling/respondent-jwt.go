package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a respondent token encodes
type RespondentClaims struct {
	ChapterID string `json:"chapter_id,omitempty"`
	Handle    string `json:"handle,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewRespondentToken(
	expiresIn time.Duration,
	respondentID string,
	chapterID string,
	handle string,
	secretKey string,
) (tokenString string, err error) {
	claims := RespondentClaims{
		chapterID,
		handle,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   respondentID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateRespondentToken(tokenString string, secretKey string) (claims *RespondentClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &RespondentClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*RespondentClaims)
	valid = valid && token.Valid
	return
}
