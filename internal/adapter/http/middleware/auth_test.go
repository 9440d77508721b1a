package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"todoapp/internal/adapter/http/middleware"
	"todoapp/pkg/translator"
)

const authTestSecret = "middleware-test-secret"

func TestMain(m *testing.M) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})
	os.Exit(m.Run())
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", middleware.AuthMiddleware(authTestSecret), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetPrincipal(c))
	})
	return router
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	signed, err := token.SignedString([]byte(authTestSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", rec.Body.String())
}

func TestAuthMiddleware_WrongSecretRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingSubjectRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	signed, err := token.SignedString([]byte(authTestSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ClientIDHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Client-Id", "guest-42")
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "guest-42", rec.Body.String())
}

func TestAuthMiddleware_NoCredentialsRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
