package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/clients/imagehost"
	"twistedbrody/infrastructure/logger"
)

type IUploadHandler interface {
	UploadImage(c *gin.Context)
}

type UploadHandler struct {
	client *imagehost.Client
}

func NewUploadHandler(client *imagehost.Client) IUploadHandler {
	return &UploadHandler{client: client}
}

// UploadImage forwards a multipart image to the external host and returns the
// hosted URL. Oversized files are rejected before any network traffic.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "image file is required"})
		return
	}
	if fileHeader.Size > h.client.MaxBytes() {
		c.JSON(http.StatusRequestEntityTooLarge, model.Res{ResponseCode: "413", ResponseMessage: imagehost.ErrFileTooLarge.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	defer file.Close()

	hostedURL, err := h.client.Upload(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Image upload failed")
		switch {
		case errors.Is(err, imagehost.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, model.Res{ResponseCode: "413", ResponseMessage: err.Error()})
		case errors.Is(err, imagehost.ErrNoFile):
			c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, model.Res{ResponseCode: "502", ResponseMessage: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"url": hostedURL}})
}
