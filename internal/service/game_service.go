package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrInvalidColor = errors.New("invalid color")

// CreateOptions describe a new game. An empty BotColor creates a game between
// two humans. Zero Strength and empty Policy fall back to the service defaults.
type CreateOptions struct {
	BotColor string `json:"botColor"`
	Strength int    `json:"strength"`
	Policy   string `json:"policy"`
}

// MoveResult is a played move and, in bot games, the bot's immediate reply.
type MoveResult struct {
	Move     model.MoveRecord  `json:"move"`
	BotReply *model.MoveRecord `json:"botReply"`
	State    model.GameState   `json:"state"`
}

type GameService struct {
	gameManager     *GameManager
	defaultPolicy   bot.Policy
	defaultStrength int
	rng             *lockedRand
}

// NewGameService seeds the bots' shared random source with seed, or with the
// clock when seed is 0.
func NewGameService(gameManager *GameManager, policy bot.Policy, strength int, seed int64) *GameService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameService{
		gameManager:     gameManager,
		defaultPolicy:   policy,
		defaultStrength: strength,
		rng:             &lockedRand{r: bot.NewRand(seed)},
	}
}

func (gs *GameService) CreateGame(opts CreateOptions) (string, error) {
	gameID := uuid.New().String()

	if opts.BotColor == "" {
		if _, err := gs.gameManager.CreateGame(gameID); err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
		return gameID, nil
	}

	seat, err := gs.botSeat(opts)
	if err != nil {
		return "", err
	}
	game, err := gs.gameManager.CreateBotGame(gameID, seat)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if game.BotToMove() {
		if _, err := gs.playBot(game, seat.Color); err != nil {
			return "", err
		}
	}
	return gameID, nil
}

func (gs *GameService) botSeat(opts CreateOptions) (model.BotSeat, error) {
	color := model.Color(opts.BotColor)
	if !color.Valid() {
		return model.BotSeat{}, fmt.Errorf("%w: %q", ErrInvalidColor, opts.BotColor)
	}
	policy := gs.defaultPolicy
	if opts.Policy != "" {
		p, err := bot.ParsePolicy(opts.Policy)
		if err != nil {
			return model.BotSeat{}, err
		}
		policy = p
	}
	strength := gs.defaultStrength
	if opts.Strength != 0 {
		strength = opts.Strength
	}
	return model.BotSeat{Color: color, Strength: strength, Policy: string(policy)}, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// HasGame reports whether gameID names a live game.
func (gs *GameService) HasGame(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves lists the legal moves of the side to move, or only those of the
// piece on from when from is not nil.
func (gs *GameService) LegalMoves(gameID string, from *model.Square) ([]model.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	board := game.Snapshot()
	if from != nil {
		return model.LegalMovesFrom(board, *from), nil
	}
	return model.LegalMoves(board), nil
}

// HandleMove plays a human move and, if the game has a bot whose turn it now
// is, the bot's reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return MoveResult{}, err
	}
	record, err := game.MakeMove(playerID, move)
	if err != nil {
		return MoveResult{}, err
	}

	result := MoveResult{Move: record}
	if seat := game.Bot(); seat != nil && game.BotToMove() {
		reply, err := gs.playBot(game, seat.Color)
		if err != nil && !errors.Is(err, model.ErrGameOver) && !errors.Is(err, model.ErrNotYourTurn) {
			return MoveResult{}, err
		}
		if err == nil {
			result.BotReply = &reply
		}
	}
	result.State = game.GetState()
	return result, nil
}

// BotMove asks the game's bot to play for the side to move.
func (gs *GameService) BotMove(gameID string) (model.MoveRecord, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveRecord{}, err
	}
	return gs.playBot(game, game.Snapshot().Turn())
}

// playBot plays one bot move for side. It fails with ErrNotYourTurn if another
// request moved side first.
func (gs *GameService) playBot(game *model.Game, side model.Color) (model.MoveRecord, error) {
	seat := game.Bot()
	if seat == nil {
		return model.MoveRecord{}, model.ErrNoBot
	}
	selector, err := bot.New(bot.Policy(seat.Policy), seat.Strength, gs.rng)
	if err != nil {
		return model.MoveRecord{}, err
	}
	record, ok, err := game.PlayBot(side, selector.ChooseMove)
	if err != nil {
		return model.MoveRecord{}, err
	}
	if !ok {
		return model.MoveRecord{}, model.ErrGameOver
	}
	log.Infof("game %s: bot played %v", game.ID, record.Move())
	return record, nil
}

func (gs *GameService) Undo(gameID string, playerID string) (int, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return 0, err
	}
	return game.Undo(playerID)
}

// RemoveGame closes a game on behalf of one of its seated players.
func (gs *GameService) RemoveGame(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if playerID == "" || !game.IsPlayerInGame(playerID) {
		return model.ErrNotInGame
	}
	if !gs.gameManager.RemoveGame(gameID) {
		return ErrGameNotFound
	}
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// SendError reports err to playerID over their game connection.
func (gs *GameService) SendError(gameID string, playerID string, err error) {
	game, gerr := gs.gameManager.GetGame(gameID)
	if gerr != nil {
		return
	}
	payload, _ := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	if !game.Send(playerID, ws.Message{Type: ws.MessageTypeError, Payload: payload}) {
		log.Debugf("game %s: no connection to report error to player %s", gameID, playerID)
	}
}

// lockedRand makes one random source safe to share between games.
type lockedRand struct {
	mu sync.Mutex
	r  bot.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
