package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/health", ok)
	app.Get("/vendors/consistency", ok)
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", Skip: []string{"/health"}})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"MissingKey", "/vendors/consistency", "", 401},
		{"WrongKey", "/vendors/consistency", "nope", 401},
		{"ValidKey", "/vendors/consistency", "secret", 200},
		{"SkippedPath", "/health", "", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_QueryKey(t *testing.T) {
	resp, err := newApp(Config{ApiKey: "secret"}).Test(httptest.NewRequest("GET", "/vendors/consistency?api_key=secret", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuth_DisabledWithoutKey(t *testing.T) {
	resp, err := newApp(Config{}).Test(httptest.NewRequest("GET", "/vendors/consistency", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
