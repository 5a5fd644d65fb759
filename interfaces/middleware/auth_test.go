package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/configuration"
	"twistedbrody/infrastructure/utils"
)

func newAuthRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var seenUserID string
	router.GET("/probe", Auth(), func(c *gin.Context) {
		seenUserID = c.GetString("user_id")
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func TestAuthOptionalAssumesOwner(t *testing.T) {
	configuration.C.App.AuthRequired = false
	router, seenUserID := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.DefaultUserID, *seenUserID)
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	configuration.C.App.AuthRequired = true
	defer func() { configuration.C.App.AuthRequired = false }()
	router, _ := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	configuration.C.App.AuthRequired = true
	configuration.C.App.SecretKey = "test-secret"
	defer func() { configuration.C.App.AuthRequired = false }()
	router, seenUserID := newAuthRouter()

	token, err := utils.GenerateToken(map[string]interface{}{"sub": "someone"}, "test-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "someone", *seenUserID)
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	configuration.C.App.AuthRequired = false
	configuration.C.App.SecretKey = "test-secret"
	router, _ := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
