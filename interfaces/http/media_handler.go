package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/usecase"
)

type IMediaHandler interface {
	GetMangas(c *gin.Context)
	CreateManga(c *gin.Context)
	UpdateManga(c *gin.Context)
	DeleteManga(c *gin.Context)
	AddMangaVersion(c *gin.Context)
	DeleteMangaVersion(c *gin.Context)
	SetDefaultMangaVersion(c *gin.Context)
	GetGalleries(c *gin.Context)
	CreateGallery(c *gin.Context)
	UpdateGallery(c *gin.Context)
	DeleteGallery(c *gin.Context)
	GetPersons(c *gin.Context)
	SavePerson(c *gin.Context)
	DeletePerson(c *gin.Context)
}

type MediaHandler struct {
	store *usecase.Store
}

func NewMediaHandler(store *usecase.Store) IMediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) GetMangas(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.FetchMangas(c.Request.Context())})
}

func (h *MediaHandler) CreateManga(c *gin.Context) {
	var req model.Manga
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "title is required"})
		return
	}
	created, err := h.store.AddManga(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: created})
}

func (h *MediaHandler) UpdateManga(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.UpdateManga(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) DeleteManga(c *gin.Context) {
	if err := h.store.RemoveManga(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) AddMangaVersion(c *gin.Context) {
	var req model.MangaVersion
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.AddMangaVersion(c.Request.Context(), c.Param("id"), req); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) DeleteMangaVersion(c *gin.Context) {
	if err := h.store.RemoveMangaVersion(c.Request.Context(), c.Param("id"), c.Param("versionId")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) SetDefaultMangaVersion(c *gin.Context) {
	if err := h.store.SetDefaultMangaVersion(c.Request.Context(), c.Param("id"), c.Param("versionId")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) GetGalleries(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.FetchGalleries(c.Request.Context())})
}

func (h *MediaHandler) CreateGallery(c *gin.Context) {
	var req model.Gallery
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "name is required"})
		return
	}
	created, err := h.store.AddGallery(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: created})
}

func (h *MediaHandler) UpdateGallery(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.UpdateGallery(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) DeleteGallery(c *gin.Context) {
	if err := h.store.RemoveGallery(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

// personKind maps the route segment to the stored map kind.
func personKind(c *gin.Context) (string, bool) {
	switch c.Param("kind") {
	case "actresses":
		return model.PersonKindActress, true
	case "creators":
		return model.PersonKindCreator, true
	}
	return "", false
}

func (h *MediaHandler) GetPersons(c *gin.Context) {
	kind, ok := personKind(c)
	if !ok {
		c.JSON(http.StatusNotFound, model.Res{ResponseCode: "404", ResponseMessage: "unknown person kind"})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.FetchPersonMap(c.Request.Context(), kind)})
}

func (h *MediaHandler) SavePerson(c *gin.Context) {
	kind, ok := personKind(c)
	if !ok {
		c.JSON(http.StatusNotFound, model.Res{ResponseCode: "404", ResponseMessage: "unknown person kind"})
		return
	}
	var req struct {
		ImageURL string `json:"imageUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.SavePersonImage(c.Request.Context(), kind, c.Param("name"), req.ImageURL); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *MediaHandler) DeletePerson(c *gin.Context) {
	kind, ok := personKind(c)
	if !ok {
		c.JSON(http.StatusNotFound, model.Res{ResponseCode: "404", ResponseMessage: "unknown person kind"})
		return
	}
	if err := h.store.RemovePersonImage(c.Request.Context(), kind, c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}
