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

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Setup(t *testing.T) {
	t.Run("mounts registrars under /api/v1", func(t *testing.T) {
		engine := gin.New()

		reports := NewDomainGroup("report", "/reports")
		reports.GET("/finance/income", ok)
		reports.GET("/finance/expense", ok)

		NewRouter(engine).Register(reports).Setup()

		assert.Equal(t, http.StatusOK, get(engine, "/api/v1/reports/finance/income").Code)
		assert.Equal(t, http.StatusOK, get(engine, "/api/v1/reports/finance/expense").Code)
		assert.Equal(t, http.StatusNotFound, get(engine, "/reports/finance/income").Code)
	})

	t.Run("honours a custom API version", func(t *testing.T) {
		engine := gin.New()

		units := NewDomainGroup("org", "/units")
		units.GET("", ok)

		NewRouter(engine, WithAPIVersion("v2")).Register(units).Setup()

		assert.Equal(t, http.StatusOK, get(engine, "/api/v2/units").Code)
		assert.Equal(t, http.StatusNotFound, get(engine, "/api/v1/units").Code)
	})

	t.Run("registers multiple domains independently", func(t *testing.T) {
		engine := gin.New()

		reports := NewDomainGroup("report", "/reports")
		reports.GET("/transactions/daily", ok)
		system := NewDomainGroup("system", "/system")
		system.GET("/ping", ok)

		NewRouter(engine).Register(reports).Register(system).Setup()

		assert.Equal(t, http.StatusOK, get(engine, "/api/v1/reports/transactions/daily").Code)
		assert.Equal(t, http.StatusOK, get(engine, "/api/v1/system/ping").Code)
	})

	t.Run("setup without registrars leaves the engine empty", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine).Setup()

		assert.Equal(t, http.StatusNotFound, get(engine, "/api/v1/anything").Code)
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("routes with path parameters resolve", func(t *testing.T) {
		engine := gin.New()

		units := NewDomainGroup("org", "/units")
		units.GET("/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		NewRouter(engine).Register(units).Setup()

		rec := get(engine, "/api/v1/units/7f9c0b2a")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "7f9c0b2a")
	})

	t.Run("only GET is served", func(t *testing.T) {
		engine := gin.New()

		reports := NewDomainGroup("report", "/reports")
		reports.GET("/finance/income", ok)

		NewRouter(engine).Register(reports).Setup()

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/finance/income", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("exposes its domain name", func(t *testing.T) {
		assert.Equal(t, "report", NewDomainGroup("report", "/reports").Name())
	})
}
