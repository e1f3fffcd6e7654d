package model

import "fmt"

const DefaultBoardSize = 8

// Board holds the pieces of one position. Each piece's Position is the
// source of truth for where it stands; at most one piece occupies a square.
type Board struct {
	pieces []*Piece
	xSize  int
	ySize  int
}

func NewBoard(pieces []*Piece, xSize, ySize int) (*Board, error) {
	if xSize < 1 || ySize < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, xSize, ySize)
	}
	b := &Board{xSize: xSize, ySize: ySize}
	for _, p := range pieces {
		if err := b.AddPiece(p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewStandardBoard returns the 32-piece starting position on an 8x8 board.
func NewStandardBoard() *Board {
	b, err := NewBoard(DefaultPieces(), DefaultBoardSize, DefaultBoardSize)
	if err != nil {
		panic(err)
	}
	return b
}

func DefaultPieces() []*Piece {
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make([]*Piece, 0, 32)
	for i, pieceType := range backRank {
		x := i + 1
		pieces = append(pieces,
			NewPiece(pieceType, White, NewCoordinate(x, 1)),
			NewPiece(Pawn, White, NewCoordinate(x, 2)),
			NewPiece(Pawn, Black, NewCoordinate(x, 7)),
			NewPiece(pieceType, Black, NewCoordinate(x, 8)),
		)
	}
	return pieces
}

func (b *Board) XSize() int { return b.xSize }
func (b *Board) YSize() int { return b.ySize }

// Pieces returns a snapshot of the piece list. The pieces themselves are
// shared with the board.
func (b *Board) Pieces() []*Piece {
	out := make([]*Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Board) PiecesOf(color PieceColor) []*Piece {
	out := []*Piece{}
	for _, p := range b.pieces {
		if p.Color == color {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) InBounds(c Coordinate) bool {
	return c.X >= 1 && c.X <= b.xSize && c.Y >= 1 && c.Y <= b.ySize
}

func (b *Board) GetPieceAt(c Coordinate) *Piece {
	for _, p := range b.pieces {
		if p.Position == c {
			return p
		}
	}
	return nil
}

func (b *Board) CoordinateIsEmpty(c Coordinate) bool {
	return b.GetPieceAt(c) == nil
}

// AddPiece places a piece, refusing squares that are off the board or taken.
func (b *Board) AddPiece(p *Piece) error {
	if !b.InBounds(p.Position) {
		return fmt.Errorf("%w: %s %s at %s", ErrOutOfBounds, p.Color, p.Type, p.Position)
	}
	if !b.CoordinateIsEmpty(p.Position) {
		return fmt.Errorf("%w: %s", ErrSquareOccupied, p.Position)
	}
	b.pieces = append(b.pieces, p)
	return nil
}

func (b *Board) RemovePiece(c Coordinate) bool {
	for i, p := range b.pieces {
		if p.Position == c {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return true
		}
	}
	return false
}

// PromotePawn replaces the pawn that made move with the chosen piece, provided
// the move landed on the opposing back rank. The new piece keeps the pawn's ID.
func (b *Board) PromotePawn(move Move, choice SpecialMove) bool {
	pieceType, ok := choice.PromotionPiece()
	if !ok || move.Piece == nil || move.Piece.Type != Pawn {
		return false
	}
	if move.To.Y != move.Piece.promotionRow(b) {
		return false
	}
	pawn := b.GetPieceAt(move.To)
	if pawn == nil || pawn.ID != move.Piece.ID || pawn.Type != Pawn {
		return false
	}
	b.RemovePiece(move.To)
	b.pieces = append(b.pieces, &Piece{
		ID:       pawn.ID,
		Type:     pieceType,
		Color:    pawn.Color,
		Position: move.To,
	})
	return true
}

func (b *Board) King(color PieceColor) *Piece {
	for _, p := range b.pieces {
		if p.Type == King && p.Color == color {
			return p
		}
	}
	return nil
}

// CheckingPieces lists the enemy pieces whose pseudo-legal moves reach the
// king's square. It never consults the legality filter, which itself depends
// on this query.
func (p *Piece) CheckingPieces(b *Board, history []Move) []*Piece {
	checking := []*Piece{}
	for _, enemy := range b.pieces {
		if enemy.Color == p.Color {
			continue
		}
		for _, m := range enemy.DefaultMoves(b, history) {
			if m.To == p.Position {
				checking = append(checking, enemy)
				break
			}
		}
	}
	return checking
}

// IsKingChecked reports whether the king of color is attacked. A side with no
// king is never in check.
func (b *Board) IsKingChecked(color PieceColor, history []Move) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	return len(king.CheckingPieces(b, history)) > 0
}

// Clone deep-copies the board and every piece on it.
func (b *Board) Clone() *Board {
	clone := &Board{
		pieces: make([]*Piece, len(b.pieces)),
		xSize:  b.xSize,
		ySize:  b.ySize,
	}
	for i, p := range b.pieces {
		clone.pieces[i] = p.Clone()
	}
	return clone
}

// Simulate applies move to a clone of the board, including the en passant
// removal and the castling rook, and returns the clone. The receiver is
// never modified.
func (b *Board) Simulate(move Move) (*Board, error) {
	sim := b.Clone()
	mover := sim.GetPieceAt(move.From)
	if mover == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPieceAtSource, move.From)
	}
	switch move.Special {
	case EnPassant:
		sim.RemovePiece(NewCoordinate(move.To.X, move.To.Y-mover.direction()))
	case Castle:
		if rook := sim.GetPieceAt(castleRookOrigin(sim, move)); rook != nil && rook.Type == Rook && rook.Color == mover.Color {
			rook.Position = castleRookTarget(move)
		}
	}
	sim.RemovePiece(move.To)
	mover.Position = move.To
	return sim, nil
}
