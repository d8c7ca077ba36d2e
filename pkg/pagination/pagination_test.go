package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "unitbridge/pkg/domain-errors"
)

func TestFromQuery(t *testing.T) {
	t.Run("defaults when absent", func(t *testing.T) {
		page, err := FromQuery(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, Page{Limit: DefaultLimit, Offset: 0}, page)
	})

	t.Run("explicit values", func(t *testing.T) {
		page, err := FromQuery(url.Values{"limit": {"5"}, "offset": {"10"}})
		require.NoError(t, err)
		assert.Equal(t, Page{Limit: 5, Offset: 10}, page)
	})

	for _, raw := range []url.Values{
		{"limit": {"0"}},
		{"limit": {"101"}},
		{"limit": {"ten"}},
		{"offset": {"-1"}},
		{"offset": {"x"}},
	} {
		t.Run("rejects "+raw.Encode(), func(t *testing.T) {
			_, err := FromQuery(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := Page{Limit: 2, Offset: 1}.Window(5)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	start, end = Page{Limit: 10, Offset: 8}.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = Page{}.Window(30)
	assert.Equal(t, 0, start)
	assert.Equal(t, DefaultLimit, end)
}
