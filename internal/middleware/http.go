package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// CORS permite solicitudes desde los orígenes indicados ("*" = cualquiera)
func CORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

// RequestID asigna un UUID a cada request (header X-Request-ID)
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// AccessLog registra cada request con su request id
func AccessLog() fiber.Handler {
	return logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${respHeader:X-Request-ID}\n",
	})
}

// Recover convierte un panic en un 500 en lugar de tumbar el servidor
func Recover() fiber.Handler {
	return recover.New()
}
