package model

import "errors"

var (
	ErrGameOver         = errors.New("game is over")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrIllegalMove      = errors.New("illegal move")
	ErrCastleNotAllowed = errors.New("castling not allowed")
	ErrKingInCheck      = errors.New("move leaves king in check")
	ErrInvalidPromotion = errors.New("invalid promotion")

	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrSquareOccupied   = errors.New("square already occupied")
	ErrNoPieceAtSource  = errors.New("no piece at simulated source square")
)

var (
	ErrGameFull   = errors.New("game is full")
	ErrNotAPlayer = errors.New("player not in game")
)
