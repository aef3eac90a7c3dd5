package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/guild-framework/guild-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/guild-framework/guild-backend/pkg/jwt-handling"
	"github.com/guild-framework/guild-backend/pkg/surveys"
	"github.com/guild-framework/guild-backend/pkg/surveys/types"
)

func (h *HttpEndpoints) AddSurveyAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")
	surveysGroup.Use(mw.GetAndValidateRespondentJWT(h.tokenSignKey))
	{
		surveysGroup.GET("/:surveyID", h.getSurvey)
		surveysGroup.POST("/:surveyID/responses", mw.RequirePayload(), h.submitSurveyResponse)
		surveysGroup.POST("/:surveyID/completed", h.markSurveyCompleted)
	}

	// ad hoc feedback, not scoped to a survey
	responsesGroup := rg.Group("/responses")
	responsesGroup.Use(mw.GetAndValidateRespondentJWT(h.tokenSignKey))
	{
		responsesGroup.POST("", mw.RequirePayload(), h.submitAdHocResponse)
	}
}

func (h *HttpEndpoints) getSurvey(c *gin.Context) {
	surveyID := c.Param("surveyID")

	survey, err := h.guildDBConn.GetSurveyBySurveyID(surveyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("failed to fetch survey", slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch survey"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

type responseSubmission struct {
	QuestionID string      `json:"questionId"`
	Subject    interface{} `json:"subject"`
	Value      interface{} `json:"value"`
}

func (h *HttpEndpoints) submitSurveyResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)
	surveyID := c.Param("surveyID")

	var req responseSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := types.ResponseInput{
		QuestionID:   req.QuestionID,
		RespondentID: token.Subject,
		SurveyID:     surveyID,
		Subject:      req.Subject,
		Value:        req.Value,
	}

	saved, err := h.surveyService.SaveResponse(input, nil)
	if err != nil {
		var invalidErr *surveys.InvalidResponseValueError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		slog.Error("failed to save response", slog.String("surveyID", surveyID), slog.String("questionID", req.QuestionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": saved})
}

func (h *HttpEndpoints) submitAdHocResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)

	var req responseSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := types.ResponseInput{
		QuestionID:   req.QuestionID,
		RespondentID: token.Subject,
		Subject:      req.Subject,
		Value:        req.Value,
	}

	saved, err := h.surveyService.SaveResponse(input, nil)
	if err != nil {
		var invalidErr *surveys.InvalidResponseValueError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
			return
		}
		slog.Error("failed to save ad hoc response", slog.String("questionID", req.QuestionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": saved})
}

func (h *HttpEndpoints) markSurveyCompleted(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.RespondentClaims)
	surveyID := c.Param("surveyID")

	if err := h.surveyService.MarkSurveyCompletedBy(surveyID, token.Subject); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark survey completed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "survey marked as completed"})
}
