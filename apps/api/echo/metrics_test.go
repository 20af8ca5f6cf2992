package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_metricsMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(metricsMiddleware)
	e.GET("/metrics-ok", func(ctx echo.Context) error { return ctx.NoContent(http.StatusOK) })
	e.GET("/metrics-teapot", func(ctx echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	okCounter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-ok", "200")
	teapotCounter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-teapot", "418")
	okBefore, teapotBefore := testutil.ToFloat64(okCounter), testutil.ToFloat64(teapotCounter)

	for _, path := range []string{"/metrics-ok", "/metrics-ok", "/metrics-teapot"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(okCounter))
	assert.Equal(t, teapotBefore+1, testutil.ToFloat64(teapotCounter))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(httpRequestDuration), 2)
}
