package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const defaultOrigins = "http://localhost:3000,http://localhost:5173"

// CORS - middleware для настройки Cross-Origin Resource Sharing
func CORS(origins string) fiber.Handler {
	if origins == "" {
		origins = defaultOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,If-None-Match",
		ExposeHeaders:    "ETag",
		AllowCredentials: origins != "*",
	})
}
