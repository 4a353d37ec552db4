package controller

import (
	"errors"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/benbeisheim/botchess-backend/internal/middleware"
	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/notation"
	"github.com/benbeisheim/botchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on r.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/moves", gc.LegalMoves)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Post("/:gameId/undo", gc.Undo)
	r.Post("/:gameId/bot", gc.BotMove)
	r.Delete("/:gameId", gc.RemoveGame)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var opts service.CreateOptions
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	playerID := middleware.PlayerID(c)
	if err := model.CheckPlayerID(playerID); err != nil {
		return respondError(c, err)
	}
	gameID, err := gc.gameService.CreateGame(opts)
	if err != nil {
		return respondError(c, err)
	}
	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves lists legal moves as "e2e4" strings, optionally only those from ?from=e2.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	var from *model.Square
	if q := c.Query("from"); q != "" {
		sq, err := notation.ParseSquare(q)
		if err != nil {
			return respondError(c, err)
		}
		from = &sq
	}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, notation.FormatMove(m))
	}
	return c.JSON(fiber.Map{"moves": out})
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	move, err := parseMove(req.From, req.To)
	if err != nil {
		return respondError(c, err)
	}

	result, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return respondError(c, err)
	}
	resp := fiber.Map{
		"move":     result.Move,
		"notation": notation.FormatRecord(result.Move),
		"state":    result.State,
	}
	if result.BotReply != nil {
		resp["botReply"] = result.BotReply
		resp["botNotation"] = notation.FormatRecord(*result.BotReply)
	}
	return c.JSON(resp)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	undone, err := gc.gameService.Undo(gameID, middleware.PlayerID(c))
	if err != nil {
		return respondError(c, err)
	}
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"undone": undone,
		"state":  state,
	})
}

func (gc *GameController) BotMove(c *fiber.Ctx) error {
	record, err := gc.gameService.BotMove(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"move":     record,
		"notation": notation.FormatRecord(record),
	})
}

func (gc *GameController) RemoveGame(c *fiber.Ctx) error {
	if err := gc.gameService.RemoveGame(c.Params("gameId"), middleware.PlayerID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Game removed"})
}

func parseMove(from, to string) (model.Move, error) {
	fromSq, err := notation.ParseSquare(from)
	if err != nil {
		return model.Move{}, err
	}
	toSq, err := notation.ParseSquare(to)
	if err != nil {
		return model.Move{}, err
	}
	return model.Move{From: fromSq, To: toSq}, nil
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNoBot):
		return fiber.StatusConflict
	case errors.Is(err, notation.ErrBadSquare),
		errors.Is(err, notation.ErrBadMove),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, model.ErrInvalidPlayerID),
		errors.Is(err, bot.ErrUnknownPolicy):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
