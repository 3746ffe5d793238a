package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the client address resolved by RealIP.
const CtxRealIPKey = "real_ip"

// proxyHeaders are consulted in order; X-Forwarded-For contributes its left-most entry.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For"}

// RealIP resolves the client address once per request so rate-limit keys and
// bypass rules agree on it. Unparseable header values fall through to c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	for _, h := range proxyHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}

// ipFromCtx returns the address set by RealIP, falling back to "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
