package resilience

import (
	"errors"
	"io"
	"net/http"
)

// ErrBodyTooLarge is returned when a response exceeds the configured limit.
var ErrBodyTooLarge = errors.New("resilience: response body exceeds limit")

// BodyLimit caps how much of a response body is buffered. Max <= 0 disables the cap.
type BodyLimit struct {
	Max int64
}

// ReadAll buffers resp.Body, failing fast on an advertised Content-Length over
// the limit and otherwise reading at most Max+1 bytes.
func (b BodyLimit) ReadAll(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	if b.Max <= 0 {
		return io.ReadAll(resp.Body)
	}
	if resp.ContentLength > b.Max {
		return nil, ErrBodyTooLarge
	}
	buf, err := io.ReadAll(io.LimitReader(resp.Body, b.Max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > b.Max {
		return nil, ErrBodyTooLarge
	}
	return buf, nil
}
