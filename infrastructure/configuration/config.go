package configuration

import (
	"fmt"
	"os"
	"strconv"

	"twistedbrody/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Mongo       Mongo       `json:"mongo"`
	RedisClient RedisClient `json:"redisClient"`
	ImageHost   ImageHost   `json:"imageHost"`
	YouTube     YouTube     `json:"youtube"`
	Vimeo       Vimeo       `json:"vimeo"`
	Thumbnail   Thumbnail   `json:"thumbnail"`
	Settings    Settings    `json:"settings"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port         int      `json:"port"`
	SecretKey    string   `json:"secretKey"`
	AuthRequired bool     `json:"authRequired"`
	CORSOrigins  []string `json:"corsOrigins"`
}

type Mongo struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
	// Connection probe: bounded retries with capped exponential backoff.
	ProbeAttempts       int `json:"probeAttempts"`
	ProbeTimeoutSeconds int `json:"probeTimeoutSeconds"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ImageHost is the third-party image upload endpoint boundary.
type ImageHost struct {
	Endpoint       string `json:"endpoint"`
	APIKey         string `json:"apiKey"`
	MaxUploadBytes int64  `json:"maxUploadBytes"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

type Vimeo struct {
	APIEndpoint    string `json:"apiEndpoint"`
	OEmbedEndpoint string `json:"oembedEndpoint"`
}

type Thumbnail struct {
	CacheSize      int    `json:"cacheSize"`
	VimeoCacheSize int    `json:"vimeoCacheSize"`
	PlaceholderURL string `json:"placeholderUrl"`
	// CaptureEndpoint is a printf-style template receiving the escaped video URL;
	// empty disables frame capture for Dropbox/Catbox sources.
	CaptureEndpoint       string `json:"captureEndpoint"`
	CaptureTimeoutSeconds int    `json:"captureTimeoutSeconds"`
	MaxCaptureRetries     int    `json:"maxCaptureRetries"`
}

type Settings struct {
	FilePath string `json:"filePath"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initMongo(&C)
	initApp(&C)
	initDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initMongo(C *Config) {
	if C.Mongo.Host == "" {
		C.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Mongo.Port == "" {
		C.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Mongo.User == "" {
		C.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Mongo.Password == "" {
		C.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Mongo.Name == "" {
		C.Mongo.Name = os.Getenv("MONGO_DB_NAME")
	}
	if C.Mongo.Host == "" {
		C.Mongo.Host = "localhost"
	}
	if C.Mongo.Port == "" {
		C.Mongo.Port = "27017"
	}
	if C.Mongo.Name == "" {
		C.Mongo.Name = "twistedbrody"
	}
	if C.Mongo.ProbeAttempts == 0 {
		C.Mongo.ProbeAttempts = 5
	}
	if C.Mongo.ProbeTimeoutSeconds == 0 {
		C.Mongo.ProbeTimeoutSeconds = 3
	}
}

func initApp(C *Config) {
	// Prefer SECRET_KEY from environment; overrides config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10080
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10080
	}
	if v := os.Getenv("AUTH_REQUIRED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.AuthRequired = true
		case "0", "false", "FALSE", "False":
			C.App.AuthRequired = false
		}
	}
	if len(C.App.CORSOrigins) == 0 {
		C.App.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if C.App.AuthRequired && C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; token auth will fail. Provide SECRET_KEY via environment.")
	}
}

func initDefaults(C *Config) {
	if C.ImageHost.Endpoint == "" {
		C.ImageHost.Endpoint = os.Getenv("IMAGE_HOST_ENDPOINT")
	}
	if C.ImageHost.APIKey == "" {
		C.ImageHost.APIKey = os.Getenv("IMAGE_HOST_API_KEY")
	}
	if C.ImageHost.MaxUploadBytes == 0 {
		C.ImageHost.MaxUploadBytes = 32 << 20
	}
	if C.YouTube.APIKey == "" {
		C.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if C.Vimeo.APIEndpoint == "" {
		C.Vimeo.APIEndpoint = "https://vimeo.com/api/v2"
	}
	if C.Vimeo.OEmbedEndpoint == "" {
		C.Vimeo.OEmbedEndpoint = "https://vimeo.com/api/oembed.json"
	}
	if C.Thumbnail.CacheSize == 0 {
		C.Thumbnail.CacheSize = 512
	}
	if C.Thumbnail.VimeoCacheSize == 0 {
		C.Thumbnail.VimeoCacheSize = 256
	}
	if C.Thumbnail.PlaceholderURL == "" {
		C.Thumbnail.PlaceholderURL = "https://placehold.co/640x360/png?text=No+Thumbnail"
	}
	if C.Thumbnail.CaptureTimeoutSeconds == 0 {
		C.Thumbnail.CaptureTimeoutSeconds = 8
	}
	if C.Thumbnail.MaxCaptureRetries == 0 {
		C.Thumbnail.MaxCaptureRetries = 3
	}
	if C.Settings.FilePath == "" {
		C.Settings.FilePath = "settings.json"
	}
}
