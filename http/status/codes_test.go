package status

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	require.Equal(t, "Ok", Text(OK))
	require.Equal(t, "Bad Request", Text(BadRequest))
	require.Equal(t, "Not Found", Text(NotFound))
	require.Equal(t, "Unimplemented", Text(NotImplemented))
	require.Empty(t, Text(599))
}

func TestErrors(t *testing.T) {
	t.Run("sentinels survive wrapping", func(t *testing.T) {
		err := fmt.Errorf("%w: no header/body delimiter", ErrMalformedMessage)
		require.ErrorIs(t, err, ErrMalformedMessage)
		require.NotErrorIs(t, err, ErrUnknownMethod)
		require.Equal(t, BadRequest, CodeOf(err, InternalServerError))
	})

	t.Run("same code different errors", func(t *testing.T) {
		require.False(t, errors.Is(ErrMalformedMessage, ErrUnknownMethod))
	})

	t.Run("fallback", func(t *testing.T) {
		require.Equal(t, InternalServerError, CodeOf(io.EOF, InternalServerError))
		require.Equal(t, HTTPVersionNotSupported, CodeOf(ErrUnsupportedVersion, BadRequest))
	})
}
