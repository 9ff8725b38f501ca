// File: bookline/handlers/bundle.go
package handlers

import (
	"bookline/services/availability"
	"bookline/services/session"
)

// HandlerBundle groups the endpoint dependencies into one struct.
type HandlerBundle struct {
	Sessions     *session.Manager
	Availability *availability.Engine
}
