package model

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/chess-rules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex
}

// Game is one session: a rules engine, its two seats and its observers.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *Engine
	players     Players
	connections *GameConnections
}

// GameSnapshot is the client view of a game.
type GameSnapshot struct {
	ID               string      `json:"id"`
	Pieces           []Piece     `json:"pieces"`
	XSize            int         `json:"xSize"`
	YSize            int         `json:"ySize"`
	ToMove           PieceColor  `json:"toMove"`
	State            GameState   `json:"state"`
	IsCheck          bool        `json:"isCheck"`
	PendingPromotion bool        `json:"pendingPromotion"`
	LastMove         *SimpleMove `json:"lastMove"`
	MoveHistory      []Ply       `json:"moveHistory"`
	Players          Players     `json:"players"`
}

type SimpleMove struct {
	From Coordinate `json:"from"`
	To   Coordinate `json:"to"`
}

type Ply struct {
	Piece   PieceType   `json:"piece"`
	Color   PieceColor  `json:"color"`
	From    Coordinate  `json:"from"`
	To      Coordinate  `json:"to"`
	Special SpecialMove `json:"special,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		engine:      NewEngine(NewStandardBoard()),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// AddPlayer seats the player as white, then black. A player already seated
// gets their existing color back.
func (g *Game) AddPlayer(playerID string) (PieceColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.colorOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: White}
		log.Infof("game %s: %s joined as white", g.ID, playerID)
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: Black}
		log.Infof("game %s: %s joined as black", g.ID, playerID)
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) Snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameSnapshot {
	board := g.engine.Board()
	pieces := make([]Piece, 0, len(board.pieces))
	for _, p := range board.pieces {
		pieces = append(pieces, *p)
	}
	history := g.engine.PreviousMoves()
	plies := make([]Ply, 0, len(history))
	for _, m := range history {
		plies = append(plies, Ply{Piece: m.Piece.Type, Color: m.Piece.Color, From: m.From, To: m.To, Special: m.Special})
	}
	var lastMove *SimpleMove
	if last, ok := g.engine.PreviousMove(); ok {
		lastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return GameSnapshot{
		ID:               g.ID,
		Pieces:           pieces,
		XSize:            board.XSize(),
		YSize:            board.YSize(),
		ToMove:           g.engine.Turn(),
		State:            g.engine.GameState(),
		IsCheck:          g.engine.InCheck(),
		PendingPromotion: g.engine.PendingPromotion(),
		LastMove:         lastMove,
		MoveHistory:      plies,
		Players:          g.players,
	}
}

// MakeMove applies req for the seated player and broadcasts the new state.
func (g *Game) MakeMove(playerID string, req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.players.colorOf(playerID)
	if !ok {
		return ErrNotAPlayer
	}
	if color != g.engine.Turn() {
		return ErrNotYourTurn
	}
	if err := g.engine.Apply(req); err != nil {
		return err
	}
	log.Infof("game %s: %s moved %s to %s, state %s", g.ID, color, req.From, req.To, g.engine.GameState())

	go g.broadcastState(g.snapshot())
	return nil
}

// Promote resolves a pending promotion; only the player who moved the pawn
// may choose.
func (g *Game) Promote(playerID string, choice SpecialMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.players.colorOf(playerID)
	if !ok {
		return ErrNotAPlayer
	}
	if last, ok := g.engine.PreviousMove(); !ok || last.Piece.Color != color {
		return ErrNotYourTurn
	}
	if err := g.engine.PromotePawn(choice); err != nil {
		return err
	}

	go g.broadcastState(g.snapshot())
	return nil
}

func (g *Game) PreviewMoves(from Coordinate) []Coordinate {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.PreviewMoves(from)
}

// RegisterConnection attaches a websocket to the game. Any client may watch;
// only seated players may move.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	if playerID == "" {
		return ErrNotAPlayer
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection %p for %s", g.ID, conn, playerID)

	go g.broadcastState(g.Snapshot())
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only unregister if this is still the current connection
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection %p for %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// broadcastState writes snapshot to every connection. Writes are serialised
// under the connections lock since a websocket allows one writer at a time.
func (g *Game) broadcastState(snapshot GameSnapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

// Send writes one message to the player's connection, if any.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return ErrNotAPlayer
	}
	return conn.WriteJSON(msg)
}
