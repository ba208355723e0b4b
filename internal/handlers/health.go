package handlers

import (
	"saudapakka/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness of the database and the cache.
func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	cacheStatus := "up"
	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		cacheStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus == "down" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
