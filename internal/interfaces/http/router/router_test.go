package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api", r.basePath)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithBasePath("/v2"))
	assert.Equal(t, "/v2", r.basePath)
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})

	g := NewDomainGroup("test", "/test")
	g.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("sales", "/sales")
		assert.Equal(t, "sales", g.Name())
		assert.Equal(t, "/sales", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("test", "/items")
		g.GET("", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api"))

		for _, tt := range []struct{ method, path string }{
			{http.MethodGet, "/api/items"},
			{http.MethodPost, "/api/items"},
			{http.MethodPut, "/api/items/1"},
			{http.MethodPatch, "/api/items/1"},
			{http.MethodDelete, "/api/items/1"},
		} {
			assert.Equal(t, http.StatusOK, serve(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("middleware reaches subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("factory", "/factory").Use(func(c *gin.Context) {
			c.Header("X-Scoped", "yes")
			c.Next()
		})
		g.Group("stock", "/stock").GET("", func(c *gin.Context) { c.String(http.StatusOK, "stock") })
		g.RegisterRoutes(engine.Group("/api"))

		w := serve(engine, http.MethodGet, "/api/factory/stock")
		assert.Equal(t, "stock", w.Body.String())
		assert.Equal(t, "yes", w.Header().Get("X-Scoped"))
	})
}
