package http

import "github.com/labstack/echo/v4"

// Handler registers a route group on the server's Echo instance.
// Implemented by the API handlers so the server stays agnostic of
// which endpoints exist.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
