package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/botchess-backend/internal/middleware"
	"github.com/benbeisheim/botchess-backend/internal/service"
	"github.com/benbeisheim/botchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error: %v", gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, fmt.Errorf("parse error: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, err)
		}
	}
}

// handleMessage applies one client message. State changes reach the client
// through the game's broadcast, so only errors are returned.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		move, err := parseMove(payload.From, payload.To)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID, playerID)
		return err

	case ws.MessageTypeBotMove:
		_, err := wsc.gameService.BotMove(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
