// Package api serves a game over HTTP and pushes board updates over a websocket.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"gomoku-local/goban"
	"gomoku-local/gomoku"
	"gomoku-local/search"
	"gomoku-local/types"
)

type moveRequest struct {
	Coord string `json:"coord"`
}

type boardResponse struct {
	Board      [][]int           `json:"board"`
	Human      string            `json:"human"`
	ToMove     string            `json:"to_move"`
	MoveNumber int               `json:"move_number"`
	Status     string            `json:"status"`
	Winner     string            `json:"winner,omitempty"`
	LastMove   string            `json:"last_move,omitempty"`
	Computer   string            `json:"computer,omitempty"`
	History    []string          `json:"history"`
	Cache      search.CacheStats `json:"cache"`
}

// Server exposes one game to HTTP clients. The human plays the side the
// game's computer does not.
type Server struct {
	game *gomoku.Game
	hub  *Hub
}

func NewServer(game *gomoku.Game) *Server {
	return &Server{game: game, hub: NewHub()}
}

// Hub returns the websocket hub. Its Run loop must be started by the caller.
func (s *Server) Hub() *Hub { return s.hub }

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", s.handleBoard)
		r.Post("/move", s.handleMove)
		r.Post("/undo", s.handleUndo)
		r.Post("/reset", s.handleReset)
		r.Get("/hint", s.handleHint)
	})
	r.Get("/ws", s.serveWS)
	return r
}

// OpenIfComputerFirst plays the computer's opening move when it moves first.
func (s *Server) OpenIfComputerFirst() error {
	if s.game.ToMove() != s.game.Computer() || s.game.State().Over() {
		return nil
	}
	p, _, err := s.game.ChooseComputerMove(s.game.Depth())
	if err != nil {
		return err
	}
	log.Debug().Str("move", p.String()).Msg("computer-opening")
	return nil
}

func (s *Server) human() types.Side { return s.game.Computer().Opponent() }

func (s *Server) board() boardResponse {
	bs := s.game.Snapshot()
	history := s.game.History()
	resp := boardResponse{
		Board:      bs.Board,
		Human:      s.human().String(),
		ToMove:     types.Side(bs.PlayerToMove).String(),
		MoveNumber: bs.MoveNumber,
		Status:     s.game.State().String(),
		History:    lo.Map(history, func(m goban.Move, _ int) string { return m.Position.String() }),
		Cache:      s.game.Engine().Cache().Stats(),
	}
	if bs.Finished() {
		resp.Winner = types.Side(bs.Winner).String()
	}
	if len(history) > 0 {
		resp.LastMove = history[len(history)-1].Position.String()
	}
	return resp
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	p, err := types.ParsePosition(req.Coord)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	st, err := s.game.PlayTurn(p, s.human())
	if err != nil {
		writeError(w, err)
		return
	}
	s.hub.Publish(s.board())

	var reply types.Position
	if !st.Over() {
		if reply, _, err = s.game.ChooseComputerMove(s.game.Depth()); err != nil {
			writeError(w, err)
			return
		}
	}
	resp := s.board()
	if !st.Over() {
		resp.Computer = reply.String()
	}
	s.hub.Publish(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if err := s.game.Undo(); err != nil {
		writeError(w, err)
		return
	}
	// Take back the human move too so the human is on move again.
	if s.game.ToMove() != s.human() && len(s.game.History()) > 0 {
		if err := s.game.Undo(); err != nil {
			writeError(w, err)
			return
		}
	}
	resp := s.board()
	s.hub.Publish(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.game.Reset()
	if err := s.OpenIfComputerFirst(); err != nil {
		writeError(w, err)
		return
	}
	resp := s.board()
	s.hub.Publish(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	p, err := s.game.Hint(s.human(), s.game.Depth())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"coord": p.String()})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{send: make(chan []byte, 16)}
	s.hub.register(c)
	c.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(s.board())})

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, c.send); err != nil {
			log.Debug().Err(err).Msg("ws-write")
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.unregister(c)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		if msg.Type == "request_board" {
			c.sendJSON(wsMessage{Type: "board", Payload: mustMarshal(s.board())})
		}
	}
}

// statusFor maps game errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gomoku.ErrInvalidMove), errors.Is(err, gomoku.ErrNothingToUndo):
		return http.StatusBadRequest
	case errors.Is(err, gomoku.ErrGameOver), errors.Is(err, gomoku.ErrBoardChanged), errors.Is(err, gomoku.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("api")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
