package qparams

import (
	"testing"

	"github.com/indigo-web/minihttp/kv"
	"github.com/stretchr/testify/require"
)

func TestParamsParser(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		result := kv.New()
		Parse("hello=world", Into(result))
		require.Equal(t, 1, result.Len())
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("two pairs", func(t *testing.T) {
		result := kv.New()
		Parse("a=1&b=2", Into(result))
		require.Equal(t, []kv.Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, result.Expose())
	})

	t.Run("empty value", func(t *testing.T) {
		result := kv.New()
		Parse("hello=&another=pair", Into(result))
		require.True(t, result.Has("hello"))
		require.Empty(t, result.Value("hello"))
		require.Equal(t, "pair", result.Value("another"))
	})

	t.Run("value with equality sign", func(t *testing.T) {
		result := kv.New()
		Parse("expr=a=b", Into(result))
		require.Equal(t, "a=b", result.Value("expr"))
	})

	t.Run("flags are dropped", func(t *testing.T) {
		for _, str := range []string{
			"lorem&hello=world&foo=bar",
			"hello=world&lorem&foo=bar",
			"hello=world&foo=bar&lorem",
		} {
			result := kv.New()
			Parse(str, Into(result))
			require.Equal(t, 2, result.Len(), str)
			require.Equal(t, "world", result.Value("hello"), str)
			require.Equal(t, "bar", result.Value("foo"), str)
			require.False(t, result.Has("lorem"), str)
		}
	})

	t.Run("trailing and doubled ampersands", func(t *testing.T) {
		result := kv.New()
		Parse("hello=world&&foo=bar&", Into(result))
		require.Equal(t, 2, result.Len())
	})

	t.Run("trimmed", func(t *testing.T) {
		result := kv.New()
		Parse(" hello = world ", Into(result))
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("last wins", func(t *testing.T) {
		result := kv.New()
		Parse("a=1&a=2", Into(result))
		require.Equal(t, 1, result.Len())
		require.Equal(t, "2", result.Value("a"))
	})

	t.Run("not decoded", func(t *testing.T) {
		result := kv.New()
		Parse("hel%20lo=wo+rld", Into(result))
		require.Equal(t, "wo+rld", result.Value("hel%20lo"))
	})

	t.Run("empty", func(t *testing.T) {
		result := kv.New()
		Parse("", Into(result))
		require.True(t, result.Empty())
	})
}
