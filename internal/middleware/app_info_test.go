package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestAppInfoWithConfig 验证应用信息中间件写入上下文
func TestAppInfoWithConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AppInfoWithConfig("Page Revision Service", "v1.0.0"))
	r.GET("/ping", func(c *gin.Context) {
		name := c.GetString("app_name")
		version := c.GetString("app_version")
		assert.Equal(t, "Page Revision Service", name)
		assert.Equal(t, "v1.0.0", version)
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
}
