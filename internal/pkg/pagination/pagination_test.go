package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.NotNil(t, got)
	return got
}

func TestGetParams(t *testing.T) {
	testCases := []struct {
		name           string
		target         string
		expectedPage   int
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults", "/", 1, DefaultLimit, 0},
		{"explicit", "/?page=3&limit=10", 3, 10, 20},
		{"page clamped", "/?page=0", 1, DefaultLimit, 0},
		{"limit clamped low", "/?limit=-5", 1, DefaultLimit, 0},
		{"limit clamped high", "/?limit=500", 1, MaxLimit, 0},
		{"garbage", "/?page=abc&limit=xyz", 1, DefaultLimit, 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsFor(t, tt.target)
			assert.Equal(t, tt.expectedPage, params.Page)
			assert.Equal(t, tt.expectedLimit, params.Limit)
			assert.Equal(t, tt.expectedOffset, params.Offset)
		})
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)

	assert.Equal(t, 2, meta.Page)
	assert.EqualValues(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
