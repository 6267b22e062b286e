package mockapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes mock 请求体上限
const maxBodyBytes = 1 << 20

// Handler 把 Route 适配为 gin 处理器，prefix 之外的路径返回 404
func Handler(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, prefix) && path != "/health" {
			c.JSON(http.StatusNotFound, Envelope{Success: false, Message: "Resource not found"})
			return
		}
		if path != "/health" {
			path = strings.TrimPrefix(path, prefix)
		}

		var body []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
			if err != nil {
				c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Invalid request body"})
				return
			}
			body = b
		}

		resp := Route(c.Request.Method, path, c.Request.URL.Query(), body)
		c.JSON(resp.Status, resp.Body)
	}
}
