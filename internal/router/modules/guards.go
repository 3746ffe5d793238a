package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Guards are the access middlewares shared by all modules.
// A nil Redis disables rate limiting.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
	Redis *redis.Client
}
