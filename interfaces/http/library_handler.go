package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"
	"twistedbrody/usecase"
)

type ILibraryHandler interface {
	GetPlaylists(c *gin.Context)
	CreatePlaylist(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddPlaylistVideo(c *gin.Context)
	RemovePlaylistVideo(c *gin.Context)
	GetUserData(c *gin.Context)
	ToggleSet(c *gin.Context)
	GetHistory(c *gin.Context)
	DeleteHistoryEntry(c *gin.Context)
}

type LibraryHandler struct {
	store *usecase.Store
}

func NewLibraryHandler(store *usecase.Store) ILibraryHandler {
	return &LibraryHandler{store: store}
}

func (h *LibraryHandler) GetPlaylists(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.Playlists()})
}

func (h *LibraryHandler) CreatePlaylist(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	created, err := h.store.CreatePlaylist(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: created})
}

func (h *LibraryHandler) UpdatePlaylist(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()))
		return
	}
	if err := h.store.UpdatePlaylist(c.Request.Context(), c.Param("id"), patch); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *LibraryHandler) DeletePlaylist(c *gin.Context) {
	if err := h.store.DeletePlaylist(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *LibraryHandler) AddPlaylistVideo(c *gin.Context) {
	if err := h.store.AddVideoToPlaylist(c.Request.Context(), c.Param("id"), c.Param("videoId")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *LibraryHandler) RemovePlaylistVideo(c *gin.Context) {
	if err := h.store.RemoveVideoFromPlaylist(c.Request.Context(), c.Param("id"), c.Param("videoId")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}

func (h *LibraryHandler) GetUserData(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.UserData()})
}

// ToggleSet flips membership of a video in favorites, saved or watchLater.
// The set name comes from the route.
func (h *LibraryHandler) ToggleSet(c *gin.Context) {
	set := c.Param("set")
	switch set {
	case usecase.SetFavorites, usecase.SetSaved, usecase.SetWatchLater:
	default:
		c.JSON(http.StatusBadRequest, model.Res{ResponseCode: "400", ResponseMessage: "unknown interaction set"})
		return
	}
	member := h.store.ToggleInSet(c.Request.Context(), set, c.Param("videoId"))
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: gin.H{"member": member}})
}

func (h *LibraryHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success", Data: h.store.FetchHistory(c.Request.Context())})
}

func (h *LibraryHandler) DeleteHistoryEntry(c *gin.Context) {
	if err := h.store.RemoveHistoryEntry(c.Request.Context(), c.Param("videoId")); err != nil {
		c.JSON(http.StatusInternalServerError, model.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.Res{ResponseCode: "00", ResponseMessage: "Success"})
}
