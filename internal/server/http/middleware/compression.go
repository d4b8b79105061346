package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest swaps a gzip-encoded request body for its decompressed
// stream so handlers bind JSON without caring about the transfer encoding.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(strings.ToLower(encoding), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer compressed.Close()
		defer reader.Close()

		c.Request.Header.Del("Content-Encoding")
		c.Request.Body = io.NopCloser(reader)
		c.Next()
	}
}
