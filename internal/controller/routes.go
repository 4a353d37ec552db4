package controller

import (
	"github.com/benbeisheim/botchess-backend/internal/middleware"
	"github.com/benbeisheim/botchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST API, the game websocket and the health check on app.
func SetupRoutes(app *fiber.App, gameService *service.GameService, allowOrigins []string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService.HasGame), websocket.New(func(c *websocket.Conn) {
		log.Infof("websocket connection established for game %s", c.Params("gameId"))
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         allowOrigins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.Register(api.Group("/game"))
}
