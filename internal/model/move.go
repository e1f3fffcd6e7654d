package model

type SpecialMove string

const (
	EnPassant     SpecialMove = "enPassant"
	Castle        SpecialMove = "castle"
	PromoteQueen  SpecialMove = "promoteQueen"
	PromoteRook   SpecialMove = "promoteRook"
	PromoteBishop SpecialMove = "promoteBishop"
	PromoteKnight SpecialMove = "promoteKnight"
)

// PromotionPiece maps a promotion tag to the piece it produces.
func (s SpecialMove) PromotionPiece() (PieceType, bool) {
	switch s {
	case PromoteQueen:
		return Queen, true
	case PromoteRook:
		return Rook, true
	case PromoteBishop:
		return Bishop, true
	case PromoteKnight:
		return Knight, true
	}
	return "", false
}

func (s SpecialMove) IsPromotion() bool {
	_, ok := s.PromotionPiece()
	return ok
}

// Move is a candidate or committed transition of one piece.
type Move struct {
	Piece   *Piece      `json:"piece"`
	From    Coordinate  `json:"from"`
	To      Coordinate  `json:"to"`
	Special SpecialMove `json:"special,omitempty"`
}

func newMove(p *Piece, to Coordinate) Move {
	return Move{Piece: p, From: p.Position, To: to}
}

// SameSquares is the equality used to match intent against candidates:
// piece identity and special tag are ignored.
func (m Move) SameSquares(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// MoveRequest is the caller's intent. Promotion is optional; when set it is
// applied in the same commit as the move.
type MoveRequest struct {
	From      Coordinate  `json:"from"`
	To        Coordinate  `json:"to"`
	Promotion SpecialMove `json:"promotion,omitempty"`
}
