// Package server serves position fingerprints over HTTP and websockets.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	chess "github.com/corentings/chess/v2"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/zobrist"
)

var ErrIllegalMove = errors.New("illegal move")

// Fingerprint describes one position.
type Fingerprint struct {
	FEN         string `json:"fen"`
	Fingerprint string `json:"fingerprint"`
	Polyglot    string `json:"polyglot,omitempty"`
}

// PlayRequest is a line of moves from fen, or from the initial position when fen is empty.
type PlayRequest struct {
	FEN   string   `json:"fen,omitempty"`
	Moves []string `json:"moves"`
}

type Ply struct {
	Move        string `json:"move"`
	FEN         string `json:"fen"`
	Fingerprint string `json:"fingerprint"`
	Verified    bool   `json:"verified"`
}

type PlayResponse struct {
	Start Fingerprint `json:"start"`
	Plies []Ply       `json:"plies"`
}

// Frame is one websocket message. A line streams its start, then one frame
// per ply, then a done frame; a failure ends the line with an error frame.
type Frame struct {
	Start *Fingerprint `json:"start,omitempty"`
	Ply   *Ply         `json:"ply,omitempty"`
	Done  bool         `json:"done,omitempty"`
	Error string       `json:"error,omitempty"`
}

type Application struct {
	router   *mux.Router
	keys     *zobrist.Keys
	upgrader websocket.Upgrader
}

// NewApplication routes the service and writes an access log line per request to logOut.
func NewApplication(keys *zobrist.Keys, logOut io.Writer) *Application {
	app := &Application{
		router: mux.NewRouter(),
		keys:   keys,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	logger := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(logOut, next)
	}
	app.router.NotFoundHandler = logger(http.HandlerFunc(notFoundHandler))
	app.router.Use(logger)

	app.router.HandleFunc("/fingerprint", app.fingerprintHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/play", app.playHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/ws", app.wsHandler)
	return app
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Error writing response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}

func hex(h uint64) string { return fmt.Sprintf("%016x", h) }

func (app *Application) describe(h *zobrist.Hashed[*gm.Board]) Fingerprint {
	b := h.Position()
	fp := Fingerprint{FEN: b.ToFEN(), Fingerprint: hex(h.Fingerprint())}
	if !b.Drops() {
		if poly, err := chess.NewZobristHasher().HashPosition(b.ChessFEN()); err == nil {
			fp.Polyglot = poly
		}
	}
	return fp
}

func (app *Application) setup(fen string) (*zobrist.Hashed[*gm.Board], error) {
	if fen == "" {
		return zobrist.NewInitial(app.keys, gm.NewBoard()), nil
	}
	return zobrist.FromFEN(app.keys, fen)
}

// play parses and applies each move of line in turn, handing every ply to emit.
// Drops are checked against the pocket only; all other moves must be legal.
func (app *Application) play(h *zobrist.Hashed[*gm.Board], line []string, emit func(Ply) error) error {
	for i, text := range line {
		b := h.Position()
		m, err := gm.ParseMove(b, text)
		if err != nil {
			return fmt.Errorf("ply %d: %w", i+1, err)
		}
		if m.Kind() != gm.MovePut && !slices.Contains(dragon.LegalMoves(b), m) {
			return fmt.Errorf("ply %d: %w %s in %s", i+1, ErrIllegalMove, text, b.ToFEN())
		}
		h.Play(m)
		ply := Ply{Move: m.String(), FEN: b.ToFEN(), Fingerprint: hex(h.Fingerprint()), Verified: h.Verify()}
		if err := emit(ply); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) fingerprintHandler(w http.ResponseWriter, r *http.Request) {
	h, err := app.setup(r.URL.Query().Get("fen"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, app.describe(h))
}

func (app *Application) playHandler(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	h, err := app.setup(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp := PlayResponse{Start: app.describe(h), Plies: make([]Ply, 0, len(req.Moves))}
	err = app.play(h, req.Moves, func(p Ply) error {
		resp.Plies = append(resp.Plies, p)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// wsHandler reads PlayRequests until the client goes away, streaming the
// frames of each line as it is played.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		var req PlayRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if err := app.stream(conn, req); err != nil {
			return
		}
	}
}

func (app *Application) stream(conn *websocket.Conn, req PlayRequest) error {
	h, err := app.setup(req.FEN)
	if err != nil {
		return conn.WriteJSON(Frame{Error: err.Error()})
	}
	start := app.describe(h)
	if err := conn.WriteJSON(Frame{Start: &start}); err != nil {
		return err
	}
	var writeErr error
	err = app.play(h, req.Moves, func(p Ply) error {
		writeErr = conn.WriteJSON(Frame{Ply: &p})
		return writeErr
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return conn.WriteJSON(Frame{Error: err.Error()})
	}
	return conn.WriteJSON(Frame{Done: true})
}
