package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"gomoku-local/gomoku"
	"gomoku-local/search"
	"gomoku-local/types"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newServer(t *testing.T, computer types.Side) *Server {
	t.Helper()
	game, err := gomoku.New(gomoku.Options{Computer: computer, Depth: 2, Search: search.Options{Workers: 2}})
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(game)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, boardResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp boardResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec, resp
}

func TestBoardEmpty(t *testing.T) {
	h := newServer(t, types.White).Routes()
	rec, resp := do(t, h, http.MethodGet, "/api/board", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.MoveNumber != 0 || resp.Status != "InProgress" || resp.ToMove != "Black" || resp.Human != "Black" {
		t.Fatalf("board = %+v", resp)
	}
	if len(resp.Board) != types.BoardSize {
		t.Fatalf("board has %d rows", len(resp.Board))
	}
}

func TestMoveGetsComputerReply(t *testing.T) {
	h := newServer(t, types.White).Routes()
	rec, resp := do(t, h, http.MethodPost, "/api/move", `{"coord":"J10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if resp.MoveNumber != 2 || resp.Computer == "" {
		t.Fatalf("board = %+v", resp)
	}
	if len(resp.History) != 2 || resp.History[0] != "J10" || resp.History[1] != resp.Computer {
		t.Fatalf("history = %v", resp.History)
	}
	if resp.Board[9][9] != int(types.Black) {
		t.Fatalf("J10 holds %d", resp.Board[9][9])
	}
}

func TestMoveErrors(t *testing.T) {
	h := newServer(t, types.White).Routes()
	if rec, _ := do(t, h, http.MethodPost, "/api/move", `{"coord":"J10"}`); rec.Code != http.StatusOK {
		t.Fatalf("first move status = %d", rec.Code)
	}

	tests := []struct {
		body string
		want int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"coord":"Z99"}`, http.StatusBadRequest},
		{`{"coord":"J10"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec, _ := do(t, h, http.MethodPost, "/api/move", tt.body)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.body, rec.Code, tt.want)
		}
	}
}

func TestUndoAndReset(t *testing.T) {
	h := newServer(t, types.White).Routes()
	do(t, h, http.MethodPost, "/api/move", `{"coord":"D4"}`)

	rec, resp := do(t, h, http.MethodPost, "/api/undo", "")
	if rec.Code != http.StatusOK || resp.MoveNumber != 0 {
		t.Fatalf("undo: status %d, moves %d", rec.Code, resp.MoveNumber)
	}
	if rec, _ := do(t, h, http.MethodPost, "/api/undo", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("undo on empty board: status %d", rec.Code)
	}

	do(t, h, http.MethodPost, "/api/move", `{"coord":"D4"}`)
	rec, resp = do(t, h, http.MethodPost, "/api/reset", "")
	if rec.Code != http.StatusOK || resp.MoveNumber != 0 {
		t.Fatalf("reset: status %d, moves %d", rec.Code, resp.MoveNumber)
	}
}

func TestComputerOpensAsBlack(t *testing.T) {
	s := newServer(t, types.Black)
	if err := s.OpenIfComputerFirst(); err != nil {
		t.Fatal(err)
	}
	_, resp := do(t, s.Routes(), http.MethodGet, "/api/board", "")
	if resp.MoveNumber != 1 || resp.ToMove != "White" {
		t.Fatalf("board = %+v", resp)
	}
}

func TestMoveOutOfTurn(t *testing.T) {
	s := newServer(t, types.Black)
	h := s.Routes()
	rec, _ := do(t, h, http.MethodPost, "/api/move", `{"coord":"J10"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	_, resp := do(t, h, http.MethodGet, "/api/board", "")
	if resp.MoveNumber != 0 || resp.Board[9][9] != int(types.None) {
		t.Fatalf("rejected move changed the board: %+v", resp)
	}
}

func TestHint(t *testing.T) {
	h := newServer(t, types.White).Routes()
	do(t, h, http.MethodPost, "/api/move", `{"coord":"K10"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/hint", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var hint map[string]string
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&hint); err != nil {
		t.Fatal(err)
	}
	if _, err := types.ParsePosition(hint["coord"]); err != nil {
		t.Fatalf("hint %q: %v", hint["coord"], err)
	}
}

func TestWebsocketReceivesBoard(t *testing.T) {
	s := newServer(t, types.White)
	done := make(chan struct{})
	defer close(done)
	go s.Hub().Run(done)

	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	read := func() wsMessage {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		return msg
	}

	if msg := read(); msg.Type != "board" {
		t.Fatalf("first message type %q", msg.Type)
	}

	resp, err := http.Post(srv.URL+"/api/move", "application/json", strings.NewReader(`{"coord":"J10"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	var last boardResponse
	for last.MoveNumber < 2 {
		msg := read()
		if msg.Type != "board" {
			continue
		}
		if err := json.Unmarshal(msg.Payload, &last); err != nil {
			t.Fatal(err)
		}
	}
	if last.Computer == "" {
		t.Fatalf("pushed board = %+v", last)
	}
}
