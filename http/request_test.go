package http

import (
	"testing"

	"github.com/indigo-web/minihttp/http/method"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		request := NewRequest(method.GET, "/hello", nil)
		require.Equal(t, "/hello", request.Path)
		require.True(t, request.Params.Empty())
		require.True(t, request.Headers.Empty())
		require.NotNil(t, request.Body)
		require.Empty(t, request.Body)
	})

	t.Run("query is stripped", func(t *testing.T) {
		request := NewRequest(method.GET, "/x?a=1&b=2", nil)
		require.Equal(t, "/x", request.Path)
		require.NotContains(t, request.Path, "?")

		value, found := request.Param("a")
		require.True(t, found)
		require.Equal(t, "1", value)
		require.Equal(t, "2", request.Params.Value("b"))
	})

	t.Run("second question mark belongs to the query", func(t *testing.T) {
		request := NewRequest(method.GET, "/x?q=why?", nil)
		require.Equal(t, "/x", request.Path)
		require.Equal(t, "why?", request.Params.Value("q"))
	})

	t.Run("pre-populated headers", func(t *testing.T) {
		request := NewRequest(method.POST, "/", []byte("hello"))
		request.Headers.Set("Content-Type", "text/plain")

		value, found := request.Header("Content-Type")
		require.True(t, found)
		require.Equal(t, "text/plain", value)
		_, found = request.Header("content-type")
		require.False(t, found)
		require.Equal(t, "hello", string(request.Body))
	})
}
