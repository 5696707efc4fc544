package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/fields/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/fields/F1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/fields/:id", "200"))
	assert.GreaterOrEqual(t, val, float64(1))
	assert.NotZero(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "nope")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).SendString("boom")
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/missing", "404"},
		{"/boom", "500"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			assert.GreaterOrEqual(t, val, float64(1))
		})
	}
}

func TestMiddleware_LabelsSurviveLaterRequests(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/labels", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/labels", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Delete("/labels", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, method := range []string{"POST", "GET", "DELETE", "GET", "POST"} {
		_, err := app.Test(httptest.NewRequest(method, "/labels", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/labels", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/labels", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("DELETE", "/labels", "200")))

	_, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "unknown", normalizePath(""))
	assert.Equal(t, "unknown", normalizePath("/"))
	assert.Equal(t, "/api/v1/health", normalizePath("/api/v1/health"))
}

func TestInteractionTransitionsTotal(t *testing.T) {
	before := testutil.ToFloat64(InteractionTransitionsTotal.WithLabelValues("open", ResultChanged))
	InteractionTransitionsTotal.WithLabelValues("open", ResultChanged).Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(InteractionTransitionsTotal.WithLabelValues("open", ResultChanged)))
}
