package model

import "fmt"

type GameState string

const (
	Playing   GameState = "playing"
	StaleMate GameState = "staleMate"
	WhiteWin  GameState = "whiteWin"
	BlackWin  GameState = "blackWin"
)

// Engine validates and commits moves on a board and tracks the game result.
// It is not safe for concurrent use; callers own one engine per game.
type Engine struct {
	board         *Board
	previousMoves []Move
	gameState     GameState
}

func NewEngine(board *Board) *Engine {
	return &Engine{
		board:         board,
		previousMoves: []Move{},
		gameState:     Playing,
	}
}

func (e *Engine) Board() *Board { return e.board }

func (e *Engine) GameState() GameState { return e.gameState }

// PendingPromotion reports whether the last move put a pawn on the back rank
// and that pawn has not been promoted yet. Play continues either way; the
// choice can only be made before the opponent replies.
func (e *Engine) PendingPromotion() bool {
	last, ok := e.PreviousMove()
	if !ok || last.Piece.Type != Pawn || last.To.Y != last.Piece.promotionRow(e.board) {
		return false
	}
	p := e.board.GetPieceAt(last.To)
	return p != nil && p.ID == last.Piece.ID && p.Type == Pawn
}

func (e *Engine) PreviousMoves() []Move {
	out := make([]Move, len(e.previousMoves))
	copy(out, e.previousMoves)
	return out
}

func (e *Engine) PreviousMove() (Move, bool) {
	if len(e.previousMoves) == 0 {
		return Move{}, false
	}
	return e.previousMoves[len(e.previousMoves)-1], true
}

// Turn is the color allowed to move next.
func (e *Engine) Turn() PieceColor {
	last, ok := e.PreviousMove()
	if !ok {
		return White
	}
	return last.Piece.Color.Opponent()
}

// InCheck reports whether the side to move is in check.
func (e *Engine) InCheck() bool {
	return e.board.IsKingChecked(e.Turn(), e.previousMoves)
}

// Move is the boolean form of Apply without a promotion choice.
func (e *Engine) Move(from, to Coordinate) bool {
	return e.Apply(MoveRequest{From: from, To: to}) == nil
}

// Apply validates req and, when legal, commits it. A rejected request leaves
// the engine and board untouched.
func (e *Engine) Apply(req MoveRequest) error {
	if e.gameState != Playing {
		return ErrGameOver
	}
	piece := e.board.GetPieceAt(req.From)
	if piece == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, req.From)
	}
	if piece.Color != e.Turn() {
		return ErrNotYourTurn
	}

	move, ok := e.candidate(piece, req.To)
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrIllegalMove, req.From, req.To)
	}
	promotes := piece.Type == Pawn && req.To.Y == piece.promotionRow(e.board)
	if req.Promotion != "" && (!promotes || !req.Promotion.IsPromotion()) {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, req.Promotion)
	}
	if move.Special == Castle && !e.canCastle(move) {
		return ErrCastleNotAllowed
	}
	if e.leavesKingInCheck(move) {
		return ErrKingInCheck
	}

	if move.Special == Castle {
		rook := e.board.GetPieceAt(castleRookOrigin(e.board, move))
		if rook == nil || rook.Type != Rook || rook.Color != piece.Color {
			return ErrCastleNotAllowed
		}
		rook.Position = castleRookTarget(move)
	}
	if move.Special == EnPassant {
		e.board.RemovePiece(NewCoordinate(move.To.X, move.To.Y-piece.direction()))
	}
	e.board.RemovePiece(move.To)
	piece.Position = move.To
	e.previousMoves = append(e.previousMoves, move)

	if promotes && req.Promotion != "" {
		e.board.PromotePawn(move, req.Promotion)
	}
	e.confirmGameState()
	return nil
}

// PromotePawn promotes the pawn the last move put on the back rank and then
// re-evaluates the game state, since the new piece may deliver mate.
func (e *Engine) PromotePawn(choice SpecialMove) error {
	if e.gameState != Playing {
		return ErrGameOver
	}
	if !e.PendingPromotion() {
		return fmt.Errorf("%w: no promotion pending", ErrInvalidPromotion)
	}
	last, _ := e.PreviousMove()
	if !e.board.PromotePawn(last, choice) {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, choice)
	}
	e.confirmGameState()
	return nil
}

// PreviewMoves lists the legal destinations of the piece on from. It does
// not check whose turn it is.
func (e *Engine) PreviewMoves(from Coordinate) []Coordinate {
	destinations := []Coordinate{}
	piece := e.board.GetPieceAt(from)
	if piece == nil {
		return destinations
	}
	for _, m := range e.legalMovesOf(piece) {
		destinations = append(destinations, m.To)
	}
	return destinations
}

// LegalMoves lists every legal move for color in the current position.
func (e *Engine) LegalMoves(color PieceColor) []Move {
	moves := []Move{}
	for _, p := range e.board.PiecesOf(color) {
		moves = append(moves, e.legalMovesOf(p)...)
	}
	return moves
}

func (e *Engine) legalMovesOf(piece *Piece) []Move {
	legal := []Move{}
	for _, m := range piece.DefaultMoves(e.board, e.previousMoves) {
		if m.Special == Castle && !e.canCastle(m) {
			continue
		}
		if e.leavesKingInCheck(m) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

func (e *Engine) candidate(piece *Piece, to Coordinate) (Move, bool) {
	want := Move{From: piece.Position, To: to}
	for _, m := range piece.DefaultMoves(e.board, e.previousMoves) {
		if m.SameSquares(want) {
			return m, true
		}
	}
	return Move{}, false
}

// leavesKingInCheck plays move on a cloned board and tests the mover's king
// there, with move appended to the history.
func (e *Engine) leavesKingInCheck(move Move) bool {
	sim, err := e.board.Simulate(move)
	if err != nil {
		panic(err)
	}
	history := make([]Move, len(e.previousMoves), len(e.previousMoves)+1)
	copy(history, e.previousMoves)
	history = append(history, move)
	return sim.IsKingChecked(move.Piece.Color, history)
}

// confirmGameState ends the game when the side to move has no legal move:
// checkmate if its king is attacked, stalemate otherwise.
func (e *Engine) confirmGameState() {
	if e.gameState != Playing {
		return
	}
	last, ok := e.PreviousMove()
	if !ok {
		return
	}
	mover := last.Piece.Color
	defender := mover.Opponent()
	if len(e.LegalMoves(defender)) > 0 {
		return
	}
	switch {
	case !e.board.IsKingChecked(defender, e.previousMoves):
		e.gameState = StaleMate
	case mover == White:
		e.gameState = WhiteWin
	default:
		e.gameState = BlackWin
	}
}
