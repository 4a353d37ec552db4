package model

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/benbeisheim/botchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player not in game")
	ErrNotYourTurn = errors.New("not your turn")
	ErrGameOver    = errors.New("game is over")
	ErrNoBot       = errors.New("game has no bot")

	ErrInvalidPlayerID  = errors.New("invalid player ID")
	ErrConnectionExists = errors.New("connection already exists")
)

// ResultNoMoves is the only result this engine reports: the side to move has
// no legal move. Loser names that side.
const ResultNoMoves = "no-moves"

// The connections for a specific game
type GameConnections struct {
	connections map[string]*connWriter // playerID -> connection
	mu          sync.RWMutex
}

// Game is one session: a board, its seats and its observers. All access to the
// board goes through the game's mutex.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	players     struct{ White, Black ClientPlayer }
	bot         *BotSeat
	result      *string
	connections *GameConnections
}

type GameState struct {
	ID             string         `json:"id"`
	Board          BoardState     `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []MoveRecord   `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LegalMoves     []Move         `json:"legalMoves"`
	Result         *string        `json:"result"`
	Loser          *Color         `json:"loser"`
	LastMove       *Move          `json:"lastMove"`
	Bot            *BotSeat       `json:"bot"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// CapturedPieces lists pieces taken by each side.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       NewBoard(),
		connections: NewGameConnections(),
	}
}

// NewGameFromBoard starts a session from an arbitrary position. The board is
// owned by the game from then on.
func NewGameFromBoard(id string, b *Board) *Game {
	g := NewGame(id)
	g.board = b
	if IsTerminal(b) {
		result := ResultNoMoves
		g.result = &result
	}
	return g
}

// NewBotGame creates a game where seat is played by the computer.
func NewBotGame(id string, seat BotSeat) *Game {
	g := NewGame(id)
	g.bot = &seat
	if seat.Color == White {
		g.players.White = ClientPlayer{ID: botPlayerID, Color: White}
	} else {
		g.players.Black = ClientPlayer{ID: botPlayerID, Color: Black}
	}
	return g
}

const botPlayerID = "bot"

// CheckPlayerID rejects IDs a client may not sit down with: the empty ID and
// the one reserved for the bot seat.
func CheckPlayerID(playerID string) error {
	if playerID == "" || playerID == botPlayerID {
		return ErrInvalidPlayerID
	}
	return nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*connWriter),
	}
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	if err := CheckPlayerID(playerID); err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: White}
		log.Infof("game %s: player %s seated as white", g.ID, playerID)
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: Black}
		log.Infof("game %s: player %s seated as black", g.ID, playerID)
		return Black, nil
	}
	return "", ErrGameFull
}

// seatOf finds a human seat. The bot's seat never matches.
func (g *Game) seatOf(playerID string) (Color, bool) {
	switch {
	case playerID == "" || playerID == botPlayerID:
		return "", false
	case g.players.White.ID == playerID:
		return White, true
	case g.players.Black.ID == playerID:
		return Black, true
	}
	return "", false
}

// IsPlayerInGame reports whether playerID holds a human seat.
func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// Bot returns the bot seat, or nil for a game between two humans.
func (g *Game) Bot() *BotSeat {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.bot == nil {
		return nil
	}
	seat := *g.bot
	return &seat
}

// BotToMove reports whether the game has a bot and it is the bot's turn.
func (g *Game) BotToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.bot != nil && g.result == nil && g.board.Turn() == g.bot.Color
}

// Snapshot returns a copy of the board for read-only analysis.
func (g *Game) Snapshot() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.Clone()
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	state := GameState{
		ID:             g.ID,
		Board:          g.board.State(),
		ToMove:         g.board.Turn(),
		MoveHistory:    g.board.History(),
		CapturedPieces: CapturedPieces{White: []Piece{}, Black: []Piece{}},
		LegalMoves:     LegalMoves(g.board),
		Result:         g.result,
	}
	state.Players.White = g.players.White
	state.Players.Black = g.players.Black
	if g.bot != nil {
		seat := *g.bot
		state.Bot = &seat
	}
	if g.result != nil {
		loser := g.board.Turn()
		state.Loser = &loser
	}
	for _, record := range state.MoveHistory {
		if record.CapturedPiece == nil {
			continue
		}
		if record.Piece.Color == White {
			state.CapturedPieces.White = append(state.CapturedPieces.White, *record.CapturedPiece)
		} else {
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, *record.CapturedPiece)
		}
	}
	if last, ok := g.board.LastMove(); ok {
		move := last.Move()
		state.LastMove = &move
	}
	return state
}

// MakeMove plays a human move for playerID.
func (g *Game) MakeMove(playerID string, move Move) (MoveRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatOf(playerID)
	if !ok {
		return MoveRecord{}, ErrNotInGame
	}
	if g.result != nil {
		return MoveRecord{}, ErrGameOver
	}
	if color != g.board.Turn() {
		return MoveRecord{}, ErrNotYourTurn
	}
	return g.executeMove(move)
}

// PlayBot lets choose pick a move for side on the live board and plays it.
// choose must not modify the board. The bool is false when choose found no move.
func (g *Game) PlayBot(side Color, choose func(*Board) (Move, bool)) (MoveRecord, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result != nil {
		return MoveRecord{}, false, ErrGameOver
	}
	if g.board.Turn() != side {
		return MoveRecord{}, false, ErrNotYourTurn
	}
	move, ok := choose(g.board)
	if !ok {
		return MoveRecord{}, false, nil
	}
	record, err := g.executeMove(move)
	if err != nil {
		return MoveRecord{}, false, err
	}
	return record, true, nil
}

func (g *Game) executeMove(move Move) (MoveRecord, error) {
	record, err := Apply(g.board, move.From, move.To)
	if err != nil {
		return MoveRecord{}, err
	}
	log.Debugf("game %s: %s %s %v", g.ID, record.Piece.Color, record.Piece.Type, move)

	if IsTerminal(g.board) {
		result := ResultNoMoves
		g.result = &result
		log.Infof("game %s: %s has no legal moves", g.ID, g.board.Turn())
	}

	g.broadcastLocked()
	return record, nil
}

// Undo takes back the last half-move. In a bot game where the bot replied last,
// the bot's reply and the human move before it are both taken back. An undo
// that would leave the bot to move is refused and reports zero half-moves.
// It returns how many half-moves were undone.
func (g *Game) Undo(playerID string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seatOf(playerID); !ok {
		return 0, ErrNotInGame
	}

	history := g.board.History()
	if len(history) == 0 {
		return 0, nil
	}
	want := 1
	if g.bot != nil && history[len(history)-1].Piece.Color == g.bot.Color {
		want = 2
	}
	if want > len(history) {
		want = len(history)
	}
	if g.bot != nil && history[len(history)-want].Piece.Color == g.bot.Color {
		log.Debugf("game %s: undo would hand the move back to the bot", g.ID)
		return 0, nil
	}

	undone := 0
	for undone < want && Undo(g.board) {
		undone++
	}
	if undone > 0 {
		g.result = nil
		log.Infof("game %s: undid %d half-move(s)", g.ID, undone)
		g.broadcastLocked()
	}
	return undone, nil
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, seated := g.seatOf(playerID); !seated && !g.canSpectate() {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection, reject the new one
		g.connections.mu.Unlock()
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = conn.Close()
		return ErrConnectionExists
	}
	g.connections.connections[playerID] = newConnWriter(conn, "game "+g.ID+": player "+playerID)
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for player %s", g.ID, playerID)

	g.broadcastLocked()
	return nil
}

// UnregisterConnection removes conn if it is still the one registered for
// playerID. It returns once no write to conn is in flight.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	w, exists := g.connections.connections[playerID]
	if !exists || w.conn != conn {
		g.connections.mu.Unlock()
		return
	}
	delete(g.connections.connections, playerID)
	g.connections.mu.Unlock()

	log.Infof("game %s: unregistering connection for player %s", g.ID, playerID)
	w.stop()
}

// Send queues msg for playerID's connection. It reports false when the player
// has no live connection.
func (g *Game) Send(playerID string, msg ws.Message) bool {
	g.connections.mu.RLock()
	w, exists := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !exists {
		return false
	}
	return g.queue(playerID, w, msg)
}

func (g *Game) queue(playerID string, w *connWriter, msg ws.Message) bool {
	if w.queue(msg) {
		return true
	}
	log.Warnf("game %s: dropping connection for player %s", g.ID, playerID)
	w.drop()
	return false
}

// broadcastLocked queues the current state for every connection. Callers hold
// g.mu, so states are queued in the order they were produced.
func (g *Game) broadcastLocked() {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	if len(g.connections.connections) == 0 {
		return
	}

	payload, err := json.Marshal(g.stateLocked())
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}
	for playerID, w := range g.connections.connections {
		g.queue(playerID, w, msg)
	}
}
