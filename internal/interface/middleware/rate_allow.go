package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc reports whether a request skips the rate limit.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP lets loopback and RFC 1918 clients through, e.g. an in-cluster metrics scraper.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ipFromCtx(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// AllowAdmin lets requests already authenticated as admin through. It must run after Auth.
func AllowAdmin() AllowFunc {
	return IsAdmin
}

// AllowAny combines rules; nil entries are ignored.
func AllowAny(rules ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, allow := range rules {
			if allow != nil && allow(c) {
				return true
			}
		}
		return false
	}
}
