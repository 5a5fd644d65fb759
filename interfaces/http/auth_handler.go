package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/configuration"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/infrastructure/utils"
)

const tokenTTL = 24 * time.Hour

type IAuthHandler interface {
	Token(c *gin.Context)
}

type AuthHandler struct{}

func NewAuthHandler() IAuthHandler {
	return &AuthHandler{}
}

// Token issues a bearer token for the fixed owner. There is no account
// database; the token exists so deployments behind AuthRequired can log in.
func (h *AuthHandler) Token(c *gin.Context) {
	now := utils.GetCurrentTime()
	token, err := utils.GenerateToken(map[string]interface{}{
		"sub": model.DefaultUserID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}, configuration.C.App.SecretKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to issue token")
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{
		"token":     token,
		"expiresIn": int64(tokenTTL.Seconds()),
	}})
}
