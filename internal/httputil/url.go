package httputil

import "github.com/gin-gonic/gin"

// RequestHost returns the protocol and host the request was made against,
// including a forwarded prefix when the backend runs behind a reverse proxy.
func RequestHost(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	return scheme + "://" + c.Request.Host + c.Request.Header.Get("x-forwarded-prefix")
}

// RequestPathV1 returns the URL of the v1 API root for the request.
func RequestPathV1(c *gin.Context) string {
	return RequestHost(c) + "/v1"
}
