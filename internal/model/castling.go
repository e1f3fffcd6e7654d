package model

// castleRookOrigin is the edge square on the king's rank in the direction of
// the castle.
func castleRookOrigin(b *Board, move Move) Coordinate {
	if move.To.X > move.From.X {
		return NewCoordinate(b.xSize, move.From.Y)
	}
	return NewCoordinate(1, move.From.Y)
}

// castleRookTarget is the square next to the king's destination, on the
// side the king came from.
func castleRookTarget(move Move) Coordinate {
	return NewCoordinate(move.To.X-sign(move.To.X-move.From.X), move.To.Y)
}

// canCastle checks a castle candidate: the king is not in check, the matching
// edge rook is present, the squares between them are empty, and no square the
// king steps through, destination included, is attacked.
func (e *Engine) canCastle(move Move) bool {
	king := move.Piece
	if e.board.IsKingChecked(king.Color, e.previousMoves) {
		return false
	}

	rook := e.board.GetPieceAt(castleRookOrigin(e.board, move))
	if rook == nil || rook.Type != Rook || rook.Color != king.Color {
		return false
	}

	dir := sign(move.To.X - move.From.X)
	for x := move.From.X + dir; x != rook.Position.X; x += dir {
		if !e.board.CoordinateIsEmpty(NewCoordinate(x, move.From.Y)) {
			return false
		}
	}

	for x := move.From.X + dir; ; x += dir {
		step := Move{Piece: king, From: move.From, To: NewCoordinate(x, move.From.Y)}
		if e.leavesKingInCheck(step) {
			return false
		}
		if x == move.To.X {
			break
		}
	}
	return true
}
