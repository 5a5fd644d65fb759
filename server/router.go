package server

import (
	"net/http"
	"time"

	httpHandler "twistedbrody/interfaces/http"
	"twistedbrody/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SSEServer serves the per-user event stream.
type SSEServer interface {
	Serve(c *gin.Context)
}

func InitiateRouter(
	catalogHandler httpHandler.ICatalogHandler,
	libraryHandler httpHandler.ILibraryHandler,
	mediaHandler httpHandler.IMediaHandler,
	uploadHandler httpHandler.IUploadHandler,
	settingsHandler httpHandler.ISettingsHandler,
	authHandler httpHandler.IAuthHandler,
	stream SSEServer,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/auth/token", authHandler.Token)

	api := router.Group("api")
	api.Use(middleware.Auth())

	api.GET("/stream", stream.Serve)

	api.GET("/videos", catalogHandler.GetVideos)
	api.POST("/videos", catalogHandler.CreateVideo)
	api.GET("/videos/:id", catalogHandler.GetVideo)
	api.PATCH("/videos/:id", catalogHandler.UpdateVideo)
	api.DELETE("/videos/:id", catalogHandler.DeleteVideo)
	api.POST("/videos/:id/view", catalogHandler.RecordView)

	api.GET("/categories", catalogHandler.GetCategories)
	api.POST("/categories", catalogHandler.CreateCategory)
	api.DELETE("/categories/:id", catalogHandler.DeleteCategory)

	api.GET("/resolve", catalogHandler.Resolve)
	api.POST("/thumbnails/preload", catalogHandler.PreloadThumbnails)

	api.GET("/playlists", libraryHandler.GetPlaylists)
	api.POST("/playlists", libraryHandler.CreatePlaylist)
	api.PATCH("/playlists/:id", libraryHandler.UpdatePlaylist)
	api.DELETE("/playlists/:id", libraryHandler.DeletePlaylist)
	api.PUT("/playlists/:id/videos/:videoId", libraryHandler.AddPlaylistVideo)
	api.DELETE("/playlists/:id/videos/:videoId", libraryHandler.RemovePlaylistVideo)

	api.GET("/userdata", libraryHandler.GetUserData)
	api.POST("/sets/:set/:videoId/toggle", libraryHandler.ToggleSet)

	api.GET("/history", libraryHandler.GetHistory)
	api.DELETE("/history/:videoId", libraryHandler.DeleteHistoryEntry)

	api.GET("/mangas", mediaHandler.GetMangas)
	api.POST("/mangas", mediaHandler.CreateManga)
	api.PATCH("/mangas/:id", mediaHandler.UpdateManga)
	api.DELETE("/mangas/:id", mediaHandler.DeleteManga)
	api.POST("/mangas/:id/versions", mediaHandler.AddMangaVersion)
	api.DELETE("/mangas/:id/versions/:versionId", mediaHandler.DeleteMangaVersion)
	api.POST("/mangas/:id/versions/:versionId/default", mediaHandler.SetDefaultMangaVersion)

	api.GET("/galleries", mediaHandler.GetGalleries)
	api.POST("/galleries", mediaHandler.CreateGallery)
	api.PATCH("/galleries/:id", mediaHandler.UpdateGallery)
	api.DELETE("/galleries/:id", mediaHandler.DeleteGallery)

	api.GET("/persons/:kind", mediaHandler.GetPersons)
	api.PUT("/persons/:kind/:name", mediaHandler.SavePerson)
	api.DELETE("/persons/:kind/:name", mediaHandler.DeletePerson)

	api.POST("/upload", uploadHandler.UploadImage)

	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.SaveSettings)

	return router
}
