package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// forwardedHeaders are consulted in order before the socket address. They are
// only trustworthy behind the reverse proxy that terminates TLS for the site
// and overwrites them; exposed directly, a client can pick its own rate bucket.
var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// getClientIP returns the originating client address: the left-most entry of
// the first forwarding header that carries one, else the peer host.
func getClientIP(c *gin.Context) string {
	for _, h := range forwardedHeaders {
		first, _, _ := strings.Cut(c.GetHeader(h), ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
