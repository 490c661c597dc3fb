package vendors

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-reconciler/core/database"
	"catalog-reconciler/core/priority"
	"catalog-reconciler/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func setupTestApp(t *testing.T) (*fiber.App, *priority.Registry) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, catalog.Migrate(db))

	store := catalog.NewVendorStore(db)
	ctx := context.Background()
	_, err = store.UpsertVendor(ctx, "lipseys", "Lipsey's", intPtr(1))
	require.NoError(t, err)
	_, err = store.UpsertVendor(ctx, "chattanooga", "Chattanooga Shooting", intPtr(3))
	require.NoError(t, err)

	reg := priority.NewRegistry(store, zap.NewNop())
	app := fiber.New()
	require.NoError(t, NewFeature(NewService(reg, store), zap.NewNop(), true).Load(app))
	return app, reg
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestHandleRank(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/vendors/LIPSEYS/rank", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var info RankInfo
	decode(t, resp.Body, &info)
	assert.Equal(t, RankInfo{Slug: "lipseys", Rank: 1}, info)

	resp, err = app.Test(httptest.NewRequest("GET", "/vendors/lipseys/rank", nil))
	require.NoError(t, err)
	decode(t, resp.Body, &info)
	assert.True(t, info.Cached)

	resp, err = app.Test(httptest.NewRequest("GET", "/vendors/unknown/rank", nil))
	require.NoError(t, err)
	decode(t, resp.Body, &info)
	assert.Equal(t, priority.SentinelRank, info.Rank)
	assert.True(t, info.Sentinel)
}

func TestHandleConsistencyAndAutoFix(t *testing.T) {
	app, reg := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/vendors/consistency", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var report priority.ConsistencyReport
	decode(t, resp.Body, &report)
	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Issues)

	rank, err := reg.Rank(context.Background(), "chattanooga")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	resp, err = app.Test(httptest.NewRequest("POST", "/vendors/autofix", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var fixed map[string]any
	decode(t, resp.Body, &fixed)
	assert.Equal(t, float64(1), fixed["vendors_updated"])

	rank, err = reg.Rank(context.Background(), "chattanooga")
	require.NoError(t, err)
	assert.Equal(t, 2, rank, "autofix invalidates changed vendors")

	resp, err = app.Test(httptest.NewRequest("GET", "/vendors/consistency", nil))
	require.NoError(t, err)
	decode(t, resp.Body, &report)
	assert.True(t, report.IsValid)
}

func TestHandleSetRankAndInvalidate(t *testing.T) {
	app, reg := setupTestApp(t)
	ctx := context.Background()

	rank, err := reg.Rank(ctx, "davidsons")
	require.NoError(t, err)
	assert.Equal(t, priority.SentinelRank, rank)

	req := httptest.NewRequest("PUT", "/vendors/davidsons", strings.NewReader(`{"display_name":"Davidson's","rank":2}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	rank, err = reg.Rank(ctx, "davidsons")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	req = httptest.NewRequest("PUT", "/vendors/davidsons", strings.NewReader(`{"rank":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/vendors/davidsons/cache", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	_, cached := reg.CachedRank("davidsons")
	assert.False(t, cached)
}

func TestHandleRank_InvalidSlug(t *testing.T) {
	app, _ := setupTestApp(t)
	long := strings.Repeat("x", 101)

	resp, err := app.Test(httptest.NewRequest("GET", "/vendors/"+long+"/rank", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
