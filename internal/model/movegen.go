package model

var (
	rookDirs   = []Coordinate{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Coordinate{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Coordinate{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Coordinate{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// DefaultMoves returns the pseudo-legal moves of the piece: valid for its
// movement rules and the current occupancy, but not filtered for leaving its
// own king in check.
func (p *Piece) DefaultMoves(b *Board, history []Move) []Move {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(b, history)
	case Knight:
		return p.stepMoves(b, knightDirs)
	case Bishop:
		return p.rayMoves(b, bishopDirs)
	case Rook:
		return p.rayMoves(b, rookDirs)
	case Queen:
		return append(p.rayMoves(b, bishopDirs), p.rayMoves(b, rookDirs)...)
	case King:
		return append(p.stepMoves(b, kingDirs), p.castleMoves(b, history)...)
	default:
		return []Move{}
	}
}

func (p *Piece) pawnMoves(b *Board, history []Move) []Move {
	pawnMoves := []Move{}
	dir := p.direction()

	one := p.Position.offset(0, dir)
	if b.InBounds(one) && b.CoordinateIsEmpty(one) {
		pawnMoves = append(pawnMoves, newMove(p, one))
		two := p.Position.offset(0, 2*dir)
		if p.Position.Y == p.startRow(b) && b.InBounds(two) && b.CoordinateIsEmpty(two) {
			pawnMoves = append(pawnMoves, newMove(p, two))
		}
	}

	for _, dx := range []int{-1, 1} {
		target := p.Position.offset(dx, dir)
		if !b.InBounds(target) {
			continue
		}
		if occupant := b.GetPieceAt(target); occupant != nil && occupant.Color != p.Color {
			pawnMoves = append(pawnMoves, newMove(p, target))
		}
	}

	if len(history) == 0 {
		return pawnMoves
	}
	last := history[len(history)-1]
	if last.Piece == nil || last.Piece.Type != Pawn || last.Piece.Color == p.Color {
		return pawnMoves
	}
	if abs(last.To.Y-last.From.Y) != 2 || last.From.Y != last.Piece.startRow(b) {
		return pawnMoves
	}
	if last.To.Y != p.Position.Y || abs(last.To.X-p.Position.X) != 1 {
		return pawnMoves
	}
	target := last.To.offset(0, dir)
	if b.InBounds(target) && b.CoordinateIsEmpty(target) {
		m := newMove(p, target)
		m.Special = EnPassant
		pawnMoves = append(pawnMoves, m)
	}
	return pawnMoves
}

func (p *Piece) stepMoves(b *Board, dirs []Coordinate) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := p.Position.offset(dir.X, dir.Y)
		if !b.InBounds(target) {
			continue
		}
		if occupant := b.GetPieceAt(target); occupant == nil || occupant.Color != p.Color {
			moves = append(moves, newMove(p, target))
		}
	}
	return moves
}

// rayMoves walks each direction until the edge or the first occupied square,
// which is included only when it holds an enemy piece.
func (p *Piece) rayMoves(b *Board, dirs []Coordinate) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		target := p.Position.offset(dir.X, dir.Y)
		for b.InBounds(target) {
			occupant := b.GetPieceAt(target)
			if occupant == nil {
				moves = append(moves, newMove(p, target))
			} else {
				if occupant.Color != p.Color {
					moves = append(moves, newMove(p, target))
				}
				break
			}
			target = target.offset(dir.X, dir.Y)
		}
	}
	return moves
}

// castleMoves lists two-square king moves toward every unmoved rook on the
// king's rank. Path and check conditions are left to the engine.
func (p *Piece) castleMoves(b *Board, history []Move) []Move {
	castles := []Move{}
	if p.hasMoved(history) {
		return castles
	}
	for _, rook := range b.pieces {
		if rook.Type != Rook || rook.Color != p.Color || rook.Position.Y != p.Position.Y {
			continue
		}
		if rook.hasMoved(history) {
			continue
		}
		dir := sign(rook.Position.X - p.Position.X)
		if dir == 0 {
			continue
		}
		target := p.Position.offset(2*dir, 0)
		if !b.InBounds(target) || !b.CoordinateIsEmpty(target) {
			continue
		}
		m := newMove(p, target)
		m.Special = Castle
		castles = append(castles, m)
	}
	return castles
}
