package middleware

import (
	"net"
	"strings"

	"plenura/config"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the address the rate limiter buckets on. Forwarding
// headers are spoofable, so they are only honored when TRUST_PROXY_HEADERS is
// set and the value parses as an IP; otherwise the socket address wins.
func getClientIP(c *gin.Context) string {
	if config.AppConfig.TrustProxyHeaders {
		// First hop of X-Forwarded-For is the original client.
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
