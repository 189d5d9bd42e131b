package http1

import (
	"strconv"

	"github.com/indigo-web/minihttp/http"
)

const (
	crlf          = "\r\n"
	contentLength = "Content-Length"
)

// Serialize renders the response into wire bytes. Never fails.
func Serialize(response *http.Response) []byte {
	return AppendResponse(nil, response)
}

// AppendResponse renders the response into the buffer and returns the extended buffer.
//
// Unless a Content-Length header was set explicitly (compared case-insensitively), it's
// rendered first, right after the status line, holding the actual body length. The response
// itself stays untouched.
func AppendResponse(buff []byte, response *http.Response) []byte {
	fields := response.Expose()

	buff = append(buff, protocol...)
	buff = append(buff, ' ')
	buff = strconv.AppendUint(buff, uint64(fields.Code), 10)
	buff = append(buff, ' ')
	buff = append(buff, fields.Reason...)
	buff = append(buff, crlf...)

	if !fields.Headers.HasFold(contentLength) {
		buff = append(buff, contentLength+": "...)
		buff = strconv.AppendInt(buff, int64(len(fields.Body)), 10)
		buff = append(buff, crlf...)
	}

	for key, value := range fields.Headers.Pairs() {
		buff = appendHeader(buff, key, value)
	}

	buff = append(buff, crlf...)

	return append(buff, fields.Body...)
}

func appendHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ':', ' ')
	buff = append(buff, value...)
	return append(buff, crlf...)
}
