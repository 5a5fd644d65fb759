package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/usecase"
)

type ISettingsHandler interface {
	GetSettings(c *gin.Context)
	SaveSettings(c *gin.Context)
}

type SettingsHandler struct {
	store *usecase.Store
}

func NewSettingsHandler(store *usecase.Store) ISettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.Settings()})
}

// SaveSettings replaces the whole settings document.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req model.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.SaveSettings(req); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: req})
}
