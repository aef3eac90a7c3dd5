package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	guildDB "github.com/guild-framework/guild-backend/pkg/db/guild"
	"github.com/guild-framework/guild-backend/pkg/surveys"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

type HttpEndpoints struct {
	tokenSignKey  string
	surveyService *surveys.Service
	guildDBConn   *guildDB.GuildDBService
}

func NewHTTPHandler(
	tokenSignKey string,
	surveyService *surveys.Service,
	guildDBConn *guildDB.GuildDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:  tokenSignKey,
		surveyService: surveyService,
		guildDBConn:   guildDBConn,
	}
}
