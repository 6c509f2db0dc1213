package middleware

import (
	"strings"

	"github.com/blutspende/logdash/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CreateCorsMiddleware(config *config.Configuration) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = config.PermittedOrigin == "" || config.PermittedOrigin == "*"

	if !corsConfig.AllowAllOrigins {
		origins := strings.Split(config.PermittedOrigin, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	corsConfig.AllowHeaders = []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"X-CSRF-Token",
		"accept",
		"origin",
		"Cache-Control",
		"X-Requested-With",
		"Last-Event-ID",
	}

	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
	}

	return cors.New(corsConfig)
}
