package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/domain/provider"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/infrastructure/worker"
	"twistedbrody/usecase"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

type ICatalogHandler interface {
	GetVideos(c *gin.Context)
	GetVideo(c *gin.Context)
	CreateVideo(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	RecordView(c *gin.Context)
	GetCategories(c *gin.Context)
	CreateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
	Resolve(c *gin.Context)
	PreloadThumbnails(c *gin.Context)
}

type CatalogHandler struct {
	store     *usecase.Store
	preloader *worker.Preloader
}

func NewCatalogHandler(store *usecase.Store, preloader *worker.Preloader) ICatalogHandler {
	return &CatalogHandler{store: store, preloader: preloader}
}

func (h *CatalogHandler) GetVideos(c *gin.Context) {
	videos := h.store.FetchVideos(c.Request.Context())
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: videos})
}

func (h *CatalogHandler) GetVideo(c *gin.Context) {
	id := c.Param("id")
	for _, video := range h.store.Videos() {
		if video.ID == id {
			c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: video})
			return
		}
	}
	c.JSON(http.StatusNotFound, model.Res{ResponseCode: "404", ResponseMessage: "Video not found"})
}

func (h *CatalogHandler) CreateVideo(c *gin.Context) {
	var req model.Video
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "url is required"})
		return
	}
	created, err := h.store.AddVideo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: created})
}

func (h *CatalogHandler) UpdateVideo(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.UpdateVideo(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *CatalogHandler) DeleteVideo(c *gin.Context) {
	if err := h.store.RemoveVideo(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *CatalogHandler) RecordView(c *gin.Context) {
	h.store.RecordView(c.Param("id"))
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories := h.store.FetchCategories(c.Request.Context())
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: categories})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if req.Type == "" {
		req.Type = model.CategoryTypeVideo
	}
	switch req.Type {
	case model.CategoryTypeVideo, model.CategoryTypeManga, model.CategoryTypeGallery:
	default:
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "unknown category type"})
		return
	}
	created, err := h.store.AddCategory(c.Request.Context(), req.Name, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: created})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.store.RemoveCategory(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

// Resolve classifies a video URL: hosting provider, extracted id, the
// embeddable player URL, and the deterministic thumbnail when one exists.
func (h *CatalogHandler) Resolve(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "url query parameter is required"})
		return
	}
	prov, embedURL, err := provider.Resolve(rawURL)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidProviderURL) {
			c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{
		"provider":     string(prov),
		"id":           provider.VideoID(rawURL),
		"embedUrl":     embedURL,
		"thumbnailUrl": provider.ThumbnailURL(rawURL),
	}})
}

// PreloadThumbnails resolves thumbnails for the requested video ids (or the
// whole catalog when none given) and returns the id → thumbnail map.
func (h *CatalogHandler) PreloadThumbnails(c *gin.Context) {
	var req struct {
		VideoIDs []string `json:"videoIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}

	videos := h.store.Videos()
	if len(req.VideoIDs) > 0 {
		wanted := make(map[string]struct{}, len(req.VideoIDs))
		for _, id := range req.VideoIDs {
			wanted[id] = struct{}{}
		}
		filtered := videos[:0]
		for _, v := range videos {
			if _, ok := wanted[v.ID]; ok {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}

	thumbnails := h.preloader.Preload(c.Request.Context(), videos)
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: thumbnails})
}
