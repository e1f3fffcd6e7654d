package model

import "github.com/google/uuid"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type PieceColor string

const (
	White PieceColor = "white"
	Black PieceColor = "black"
)

func (c PieceColor) Opponent() PieceColor {
	if c == White {
		return Black
	}
	return White
}

// Piece is a single chessman. Position is owned by the piece and is the only
// record of where it stands; the Board owns the collection.
type Piece struct {
	ID       string     `json:"id"`
	Type     PieceType  `json:"type"`
	Color    PieceColor `json:"color"`
	Position Coordinate `json:"position"`
}

func NewPiece(pieceType PieceType, color PieceColor, position Coordinate) *Piece {
	return &Piece{
		ID:       uuid.NewString(),
		Type:     pieceType,
		Color:    color,
		Position: position,
	}
}

// Clone returns an independent copy that keeps the same ID, so history
// lookups still recognise it on a simulated board.
func (p *Piece) Clone() *Piece {
	clone := *p
	return &clone
}

// direction is the rank step of a pawn of this piece's color.
func (p *Piece) direction() int {
	if p.Color == White {
		return 1
	}
	return -1
}

func (p *Piece) startRow(b *Board) int {
	if p.Color == White {
		return 2
	}
	return b.ySize - 1
}

func (p *Piece) promotionRow(b *Board) int {
	if p.Color == White {
		return b.ySize
	}
	return 1
}

// hasMoved reports whether the piece appears as the mover anywhere in history.
func (p *Piece) hasMoved(history []Move) bool {
	for _, m := range history {
		if m.Piece != nil && m.Piece.ID == p.ID {
			return true
		}
	}
	return false
}
