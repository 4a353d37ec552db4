package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/botchess-backend/internal/bot"
	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/service"
	"github.com/benbeisheim/botchess-backend/internal/testutil"
	"github.com/benbeisheim/botchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *service.GameService) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(), bot.PolicyScoring, bot.DefaultStrength, 1)
	app := fiber.New()
	SetupRoutes(app, gs, []string{"*"})
	return app, gs
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err, "%s %s", method, path)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		testutil.AssertNoError(t, json.Unmarshal(raw, &out), "body %s", raw)
	}
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App, player, body string) string {
	t.Helper()
	status, out := do(t, app, http.MethodPost, "/api/game/create", player, body)
	if status != http.StatusOK {
		t.Fatalf("create: status %d: %v", status, out)
	}
	id, _ := out["game_id"].(string)
	if id == "" {
		t.Fatalf("create: no game_id in %v", out)
	}
	return id
}

func TestHealthz(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := do(t, app, http.MethodGet, "/healthz", "", "")
	testutil.AssertEqual(t, status, http.StatusOK)
}

func TestAPI_RequiresPlayerID(t *testing.T) {
	app, _ := newTestApp(t)
	status, out := do(t, app, http.MethodPost, "/api/game/create", "", "")
	testutil.AssertEqual(t, status, http.StatusUnauthorized)
	if out["error"] == nil {
		t.Error("no error message in 401 response")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/game/create?playerId=alice", nil)
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK, "player ID from query")
}

func TestAPI_TwoPlayerGame(t *testing.T) {
	app, _ := newTestApp(t)
	id := createGame(t, app, "alice", "")

	status, out := do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["color"], "black")

	status, _ = do(t, app, http.MethodPost, "/api/game/join/"+id, "carol", "")
	testutil.AssertEqual(t, status, http.StatusConflict)

	status, out = do(t, app, http.MethodGet, "/api/game/"+id+"/moves?from=e2", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["moves"], []interface{}{"e2e3", "e2e4"})

	status, out = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["notation"], "e2-e4")
	if _, ok := out["botReply"]; ok {
		t.Error("botReply present in a game between two humans")
	}

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"from":"d2","to":"d4"}`)
	testutil.AssertEqual(t, status, http.StatusConflict, "moving out of turn")

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bob", `{"from":"e7","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusUnprocessableEntity, "illegal move")

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bob", `{"from":"e9","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusBadRequest, "bad square")

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "mallory", `{"from":"e7","to":"e5"}`)
	testutil.AssertEqual(t, status, http.StatusForbidden, "not in game")

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/bot", "bob", "")
	testutil.AssertEqual(t, status, http.StatusConflict, "no bot")

	status, out = do(t, app, http.MethodPost, "/api/game/"+id+"/undo", "bob", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["undone"], float64(1))

	status, out = do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["toMove"], "white")

	status, _ = do(t, app, http.MethodDelete, "/api/game/"+id, "mallory", "")
	testutil.AssertEqual(t, status, http.StatusForbidden, "outsider removing game")
	status, _ = do(t, app, http.MethodDelete, "/api/game/"+id, "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	status, _ = do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	testutil.AssertEqual(t, status, http.StatusNotFound, "after removal")
}

func TestAPI_BotGame(t *testing.T) {
	app, _ := newTestApp(t)
	id := createGame(t, app, "alice", `{"botColor":"black"}`)

	status, out := do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, status, http.StatusOK)
	if out["botNotation"] == nil {
		t.Fatalf("no bot reply in %v", out)
	}
	state, _ := out["state"].(map[string]interface{})
	testutil.AssertEqual(t, state["toMove"], "white")

	status, out = do(t, app, http.MethodPost, "/api/game/"+id+"/undo", "alice", "")
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, out["undone"], float64(2))
}

func TestAPI_Errors(t *testing.T) {
	app, _ := newTestApp(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown game", http.MethodGet, "/api/game/missing", "", http.StatusNotFound},
		{"unknown game moves", http.MethodGet, "/api/game/missing/moves", "", http.StatusNotFound},
		{"bad bot colour", http.MethodPost, "/api/game/create", `{"botColor":"green"}`, http.StatusBadRequest},
		{"bad policy", http.MethodPost, "/api/game/create", `{"botColor":"white","policy":"minimax"}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, "/api/game/create", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, tt.method, tt.path, "alice", tt.body)
			testutil.AssertEqual(t, status, tt.want)
		})
	}
}

func TestAPI_ReservedPlayerID(t *testing.T) {
	app, gs := newTestApp(t)
	status, _ := do(t, app, http.MethodPost, "/api/game/create", "bot", `{"botColor":"black"}`)
	testutil.AssertEqual(t, status, http.StatusBadRequest, "create as bot")

	id := createGame(t, app, "alice", `{"botColor":"black"}`)
	status, _ = do(t, app, http.MethodPost, "/api/game/join/"+id, "bot", "")
	testutil.AssertEqual(t, status, http.StatusBadRequest, "join as bot")
	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bot", `{"from":"e7","to":"e5"}`)
	testutil.AssertEqual(t, status, http.StatusForbidden, "move as bot")
	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/undo", "bot", "")
	testutil.AssertEqual(t, status, http.StatusForbidden, "undo as bot")

	state, err := gs.GetGameState(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state.Players.White.ID, "alice")
}

func TestWebSocketRoute_RequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := do(t, app, http.MethodGet, "/ws/game/abc", "alice", "")
	testutil.AssertEqual(t, status, http.StatusUpgradeRequired)

	status, _ = do(t, app, http.MethodGet, "/ws/game/abc", "", "")
	testutil.AssertEqual(t, status, http.StatusUnauthorized)
}

func TestWebSocket_HandleMessage(t *testing.T) {
	_, gs := newTestApp(t)
	wsc := NewWebSocketController(gs)
	id, err := gs.CreateGame(service.CreateOptions{BotColor: "black"})
	testutil.AssertNoError(t, err)
	_, err = gs.JoinGame(id, "alice")
	testutil.AssertNoError(t, err)

	move, _ := json.Marshal(ws.MovePayload{From: "d2", To: "d4"})
	testutil.AssertNoError(t, wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeMove, Payload: move}))

	state, err := gs.GetGameState(id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(state.MoveHistory), 2, "human move and bot reply")

	testutil.AssertNoError(t, wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeUndo}))
	state, _ = gs.GetGameState(id)
	testutil.AssertEqual(t, len(state.MoveHistory), 0)

	bad, _ := json.Marshal(ws.MovePayload{From: "d2", To: "d5"})
	err = wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeMove, Payload: bad})
	testutil.AssertErrorIs(t, err, model.ErrIllegalMove)

	if err := wsc.handleMessage(id, "alice", ws.Message{Type: "resign"}); err == nil {
		t.Error("unknown message type accepted")
	}
}
