package main

import (
	"os"
	"strings"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/benbeisheim/botchess-backend/internal/config"
	"github.com/benbeisheim/botchess-backend/internal/controller"
	"github.com/benbeisheim/botchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := cfg.Level()
	log.SetLevel(level)

	app := fiber.New(fiber.Config{AppName: "botchess"})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	policy, _ := bot.ParsePolicy(cfg.BotPolicy)
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, policy, cfg.BotStrength, cfg.BotSeed)

	controller.SetupRoutes(app, gameService, strings.Split(cfg.AllowOrigins, ","))

	log.Infof("listening on %s (bot policy %s, strength %d)", cfg.Addr, policy, cfg.BotStrength)
	log.Fatal(app.Listen(cfg.Addr))
}

// corsConfig admits every method the game API routes on.
func corsConfig(allowOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins:     allowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}
}
