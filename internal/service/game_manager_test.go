package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chess-rules/internal/model"
)

func TestGameManagerCreateGame(t *testing.T) {
	gm := NewGameManager()

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Errorf("CreateGame twice error = %v; want %v", err, ErrGameExists)
	}
	if _, err := gm.GetGame("g1"); err != nil {
		t.Errorf("GetGame(g1): %v", err)
	}
	if _, err := gm.GetGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGame(nope) error = %v; want %v", err, ErrGameNotFound)
	}
}

func TestGameManagerUnknownGame(t *testing.T) {
	gm := NewGameManager()

	if _, err := gm.AddPlayerToGame("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("AddPlayerToGame error = %v; want %v", err, ErrGameNotFound)
	}
	if _, err := gm.GetGameState("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState error = %v; want %v", err, ErrGameNotFound)
	}
	if err := gm.MakeMove("nope", "alice", model.MoveRequest{}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("MakeMove error = %v; want %v", err, ErrGameNotFound)
	}
	if err := gm.Promote("nope", "alice", model.PromoteQueen); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Promote error = %v; want %v", err, ErrGameNotFound)
	}
	if _, err := gm.PreviewMoves("nope", model.NewCoordinate(1, 2)); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("PreviewMoves error = %v; want %v", err, ErrGameNotFound)
	}
	// Unregistering from a missing game is a no-op.
	gm.UnregisterConnection("nope", "alice", nil)
}

func TestGameServiceFlow(t *testing.T) {
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if gameID == "" {
		t.Fatal("CreateGame returned an empty ID")
	}

	if color, err := gs.JoinGame(gameID, "alice"); err != nil || color != model.White {
		t.Fatalf("JoinGame(alice) = %q, %v; want white", color, err)
	}
	if color, err := gs.JoinGame(gameID, "bob"); err != nil || color != model.Black {
		t.Fatalf("JoinGame(bob) = %q, %v; want black", color, err)
	}
	if _, err := gs.JoinGame(gameID, "carol"); !errors.Is(err, model.ErrGameFull) {
		t.Errorf("JoinGame(carol) error = %v; want %v", err, model.ErrGameFull)
	}

	moves, err := gs.PreviewMoves(gameID, model.NewCoordinate(5, 2))
	if err != nil {
		t.Fatalf("PreviewMoves: %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("PreviewMoves(e2) = %v; want two squares", moves)
	}

	e4 := model.MoveRequest{From: model.NewCoordinate(5, 2), To: model.NewCoordinate(5, 4)}
	if err := gs.HandleMove(gameID, "bob", e4); !errors.Is(err, model.ErrNotYourTurn) {
		t.Errorf("HandleMove by black error = %v; want %v", err, model.ErrNotYourTurn)
	}
	if err := gs.HandleMove(gameID, "alice", e4); err != nil {
		t.Fatalf("HandleMove e2-e4: %v", err)
	}
	illegal := model.MoveRequest{From: model.NewCoordinate(4, 7), To: model.NewCoordinate(4, 4)}
	if err := gs.HandleMove(gameID, "bob", illegal); !errors.Is(err, model.ErrIllegalMove) {
		t.Errorf("HandleMove d7-d4 error = %v; want %v", err, model.ErrIllegalMove)
	}
	if err := gs.HandlePromotion(gameID, "alice", model.PromoteQueen); !errors.Is(err, model.ErrInvalidPromotion) {
		t.Errorf("HandlePromotion with nothing pending error = %v; want %v", err, model.ErrInvalidPromotion)
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if len(state.MoveHistory) != 1 || state.ToMove != model.Black {
		t.Errorf("state after e4: %d plies, %s to move; want 1, black", len(state.MoveHistory), state.ToMove)
	}

	if err := gs.SendPreview(gameID, "alice", model.NewCoordinate(5, 4)); !errors.Is(err, model.ErrNotAPlayer) {
		t.Errorf("SendPreview without connection error = %v; want %v", err, model.ErrNotAPlayer)
	}
}
