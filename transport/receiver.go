package transport

import (
	"errors"
	"io"

	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/buffer"
)

// Receive reads a whole message using a fixed-size buffer of bufferSize bytes. Reading stops as
// soon as a read returns fewer bytes than the buffer holds, which is considered the end of the
// message. This heuristic only holds for messages arriving in a single burst. It does not frame
// by Content-Length, so a message split across network packets may be cut short.
//
// The accumulated message may not exceed limit bytes, otherwise status.ErrMessageTooLarge is
// returned. Read failures are wrapped into ErrConnectionRead. The end of stream counts as a
// short read, unless nothing was received at all.
func Receive(r io.Reader, bufferSize, limit int) ([]byte, error) {
	bufferSize = max(bufferSize, 1)
	readBuff := make([]byte, bufferSize)
	accumulator := buffer.New(bufferSize, limit)

	for {
		n, err := r.Read(readBuff)
		if n > 0 && !accumulator.Append(readBuff[:n]) {
			return nil, status.ErrMessageTooLarge
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && accumulator.Len() > 0:
			return accumulator.Bytes(), nil
		default:
			return nil, readFailure(err)
		}

		if n < bufferSize {
			return accumulator.Bytes(), nil
		}
	}
}

// Send writes the whole data into the writer, wrapping failures into ErrConnectionWrite.
func Send(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return writeFailure(err)
		}

		if n == 0 {
			return writeFailure(io.ErrShortWrite)
		}

		data = data[n:]
	}

	return nil
}
