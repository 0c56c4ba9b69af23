package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies after decompression. Multipart images are
// limited separately by the asset store.
const MaxBodyBytes = 8 << 20

type gzipBody struct {
	io.Reader
	closers []io.Closer
}

func (b gzipBody) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DecompressRequest transparently handles gzip encoded requests.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Request.Body
		reader, err := gzip.NewReader(original)
		if err != nil {
			abort(c, http.StatusBadRequest, "malformed gzip body")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, gzipBody{Reader: reader, closers: []io.Closer{reader, original}}, MaxBodyBytes)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
