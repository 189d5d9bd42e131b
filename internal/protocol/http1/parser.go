package http1

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/utils/uf"
)

const protocol = "HTTP/1.1"

var delimiter = []byte("\r\n\r\n")

// Parse turns a complete message into a request. The headers block ends at the FIRST
// CRLFCRLF sequence, everything after it is the body, even if the body contains the same
// sequence again.
//
// The returned request references the passed data, so it must not be modified afterwards.
func Parse(data []byte) (*http.Request, error) {
	if len(data) < len(delimiter) {
		return nil, fmt.Errorf("%w: message is too short", status.ErrMalformedMessage)
	}

	end := bytes.Index(data, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: no header/body delimiter", status.ErrMalformedMessage)
	}

	end += len(delimiter)
	head, body := lossy(data[:end]), data[end:]

	requestLine, headers, _ := strings.Cut(head, "\n")
	tokens := strings.Fields(requestLine)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no request line", status.ErrMalformedMessage)
	}

	m := method.Parse(tokens[0])
	if m == method.Unknown {
		return nil, fmt.Errorf("%w: %q", status.ErrUnknownMethod, tokens[0])
	}

	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: no request URI", status.ErrMalformedMessage)
	}

	if len(tokens) < 3 {
		return nil, fmt.Errorf("%w: no protocol version", status.ErrMalformedMessage)
	}

	if tokens[2] != protocol {
		return nil, fmt.Errorf("%w: %q", status.ErrUnsupportedVersion, tokens[2])
	}

	request := http.NewRequest(m, tokens[1], body)

	for len(headers) > 0 {
		var line string
		line, headers, _ = strings.Cut(headers, "\n")

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		request.Headers.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return request, nil
}

// lossy returns the headers block as a string, replacing invalid UTF-8 sequences instead of
// failing on them.
func lossy(head []byte) string {
	return strings.ToValidUTF8(uf.B2S(head), "\uFFFD")
}
