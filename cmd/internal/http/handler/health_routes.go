package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck backs the container health check.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
