package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaynem/WasteWise-Backend/internal/database"
)

func TestRateLimitMiddleware_PassesWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	database.Redis = nil

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	c.Request = req

	GeneralRateLimit()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}
