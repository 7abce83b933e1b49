package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeJSONWithCache marshals v and writes it through writeWithCache.
func writeJSONWithCache(
	c *gin.Context,
	status int,
	v any,
	cacheControl string,
	weak bool,
) {
	b, err := json.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}
	writeWithCache(c, status, "application/json; charset=utf-8", b, cacheControl, weak)
}

// writeWithCache writes body with an ETag derived from its hash and the
// given Cache-Control. A matching If-None-Match gets 304 and no body.
func writeWithCache(
	c *gin.Context,
	status int,
	contentType string,
	body []byte,
	cacheControl string,
	weak bool,
) {
	tag := etag(body, weak)
	c.Header("ETag", tag)
	if cacheControl != "" {
		c.Header("Cache-Control", cacheControl)
	}
	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(status, contentType, body)
}

func etag(body []byte, weak bool) string {
	sum := sha256.Sum256(body)
	tag := `"` + hex.EncodeToString(sum[:]) + `"`
	if weak {
		tag = "W/" + tag
	}
	return tag
}
