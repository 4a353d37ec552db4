package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade admits only websocket handshakes for a known game from an
// identified player. gameExists is consulted before the connection is upgraded
// so an unknown game is a plain 404 rather than a socket that closes at once.
// It must be mounted on a route that declares :gameId, after EnsurePlayerID.
func WebSocketUpgrade(gameExists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if PlayerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		gameID := c.Params("gameId")
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		case !gameExists(gameID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}
		return c.Next()
	}
}
