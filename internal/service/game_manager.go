// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager is the registry of live games, keyed by game ID.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	return gm.add(model.NewGame(gameID))
}

func (gm *GameManager) CreateBotGame(gameID string, seat model.BotSeat) (*model.Game, error) {
	return gm.add(model.NewBotGame(gameID, seat))
}

func (gm *GameManager) add(game *model.Game) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return nil, ErrGameExists
	}
	gm.games[game.ID] = game
	log.Infof("game %s created", game.ID)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// RemoveGame drops a finished or abandoned game. It reports whether the game existed.
func (gm *GameManager) RemoveGame(gameID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return false
	}
	delete(gm.games, gameID)
	log.Infof("game %s removed", gameID)
	return true
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
