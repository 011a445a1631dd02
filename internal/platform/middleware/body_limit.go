package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrBodyTooLarge is returned by the streaming limiter once the read limit
// is exceeded. Handlers that parse the body themselves (multipart uploads)
// should pass it through instead of reporting a generic parse failure.
var ErrBodyTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")

// IsBodyLimitExceeded reports whether err originated from the body limiter,
// even when the multipart reader wrapped it on the way up.
func IsBodyLimitExceeded(err error) bool {
	if errors.Is(err, ErrBodyTooLarge) {
		return true
	}
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge
}

// BodyLimit returns middleware that limits the maximum request body size to
// maxBytes. Upload endpoints receive whole PDFs as multipart bodies, so the
// limit is checked both against Content-Length (early rejection) and while
// the body is actually read (Content-Length can be missing or wrong).
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Body == nil || c.Request().Body == http.NoBody {
				return next(c)
			}

			if c.Request().ContentLength > maxBytes {
				return payloadTooLargeError(c, maxBytes)
			}

			c.Request().Body = &limitedReadCloser{
				ReadCloser: c.Request().Body,
				remaining:  maxBytes,
			}

			return next(c)
		}
	}
}

// limitedReadCloser wraps an io.ReadCloser and returns an error once the
// read limit is exceeded.
type limitedReadCloser struct {
	io.ReadCloser
	remaining int64
	exceeded  bool
}

func (r *limitedReadCloser) Read(p []byte) (n int, err error) {
	if r.exceeded {
		return 0, ErrBodyTooLarge
	}

	// Only read up to the remaining allowed bytes + 1 (to detect overflow)
	toRead := int64(len(p))
	if toRead > r.remaining+1 {
		toRead = r.remaining + 1
	}

	n, err = r.ReadCloser.Read(p[:toRead])
	r.remaining -= int64(n)

	if r.remaining < 0 {
		r.exceeded = true
		return 0, ErrBodyTooLarge
	}

	return n, err
}

func payloadTooLargeError(c echo.Context, limit int64) error {
	return c.JSON(http.StatusRequestEntityTooLarge, map[string]interface{}{
		"success": false,
		"message": fmt.Sprintf("request body exceeds maximum allowed size of %d bytes", limit),
	})
}
