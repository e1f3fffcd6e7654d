package model

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chess-rules/internal/ws"
	"github.com/google/go-cmp/cmp"
)

func seatedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("g1")
	if _, err := g.AddPlayer("alice"); err != nil {
		t.Fatalf("AddPlayer(alice): %v", err)
	}
	if _, err := g.AddPlayer("bob"); err != nil {
		t.Fatalf("AddPlayer(bob): %v", err)
	}
	return g
}

func TestAddPlayer(t *testing.T) {
	g := NewGame("g1")

	steps := []struct {
		player  string
		want    PieceColor
		wantErr error
	}{
		{"alice", White, nil},
		{"bob", Black, nil},
		{"alice", White, nil},
		{"bob", Black, nil},
		{"carol", "", ErrGameFull},
	}
	for _, s := range steps {
		got, err := g.AddPlayer(s.player)
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("AddPlayer(%s) error = %v; want %v", s.player, err, s.wantErr)
		}
		if got != s.want {
			t.Errorf("AddPlayer(%s) = %q; want %q", s.player, got, s.want)
		}
	}

	wantPlayers := Players{
		White: ClientPlayer{ID: "alice", Color: White},
		Black: ClientPlayer{ID: "bob", Color: Black},
	}
	if diff := cmp.Diff(wantPlayers, g.Snapshot().Players); diff != "" {
		t.Errorf("Players mismatch (-want +got):\n%s", diff)
	}
}

func TestGameMakeMove(t *testing.T) {
	g := seatedGame(t)
	e4 := MoveRequest{From: at(5, 2), To: at(5, 4)}

	if err := g.MakeMove("carol", e4); !errors.Is(err, ErrNotAPlayer) {
		t.Errorf("MakeMove by spectator error = %v; want %v", err, ErrNotAPlayer)
	}
	if err := g.MakeMove("bob", e4); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("MakeMove by black on white's turn error = %v; want %v", err, ErrNotYourTurn)
	}
	if err := g.MakeMove("alice", MoveRequest{From: at(5, 2), To: at(5, 5)}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("MakeMove e2-e5 error = %v; want %v", err, ErrIllegalMove)
	}
	if err := g.MakeMove("alice", e4); err != nil {
		t.Fatalf("MakeMove e2-e4: %v", err)
	}

	snap := g.Snapshot()
	if snap.ToMove != Black {
		t.Errorf("ToMove = %s; want black", snap.ToMove)
	}
	want := []Ply{{Piece: Pawn, Color: White, From: at(5, 2), To: at(5, 4)}}
	if diff := cmp.Diff(want, snap.MoveHistory); diff != "" {
		t.Errorf("MoveHistory mismatch (-want +got):\n%s", diff)
	}
	if snap.LastMove == nil || snap.LastMove.To != at(5, 4) {
		t.Errorf("LastMove = %+v; want to (5,4)", snap.LastMove)
	}
}

func TestSnapshot(t *testing.T) {
	g := seatedGame(t)
	snap := g.Snapshot()

	if snap.ID != "g1" {
		t.Errorf("ID = %q; want g1", snap.ID)
	}
	if len(snap.Pieces) != 32 {
		t.Errorf("len(Pieces) = %d; want 32", len(snap.Pieces))
	}
	if snap.XSize != 8 || snap.YSize != 8 {
		t.Errorf("size = %dx%d; want 8x8", snap.XSize, snap.YSize)
	}
	if snap.State != Playing || snap.IsCheck || snap.PendingPromotion {
		t.Errorf("fresh game state = %s check=%v pending=%v", snap.State, snap.IsCheck, snap.PendingPromotion)
	}
	if snap.LastMove != nil {
		t.Errorf("LastMove = %+v; want nil", snap.LastMove)
	}
	wantPlayers := Players{
		White: ClientPlayer{ID: "alice", Color: White},
		Black: ClientPlayer{ID: "bob", Color: Black},
	}
	if diff := cmp.Diff(wantPlayers, snap.Players); diff != "" {
		t.Errorf("Players mismatch (-want +got):\n%s", diff)
	}

	// The snapshot is a copy.
	snap.Pieces[0].Position = at(4, 4)
	if g.Snapshot().Pieces[0].Position == at(4, 4) {
		t.Error("editing a snapshot changed the game")
	}
}

func TestGamePromote(t *testing.T) {
	pawn := NewPiece(Pawn, White, at(1, 7))
	board := newTestBoard(t,
		NewPiece(King, White, at(5, 1)),
		NewPiece(King, Black, at(5, 8)),
		pawn,
	)
	g := NewGame("g1")
	g.engine = NewEngine(board)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.MakeMove("alice", MoveRequest{From: at(1, 7), To: at(1, 8)}); err != nil {
		t.Fatalf("MakeMove a7-a8: %v", err)
	}
	if !g.Snapshot().PendingPromotion {
		t.Fatal("PendingPromotion = false after reaching the last rank")
	}
	if err := g.Promote("bob", PromoteQueen); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Promote by black error = %v; want %v", err, ErrNotYourTurn)
	}
	if err := g.Promote("carol", PromoteQueen); !errors.Is(err, ErrNotAPlayer) {
		t.Errorf("Promote by spectator error = %v; want %v", err, ErrNotAPlayer)
	}
	if err := g.Promote("alice", PromoteRook); err != nil {
		t.Fatalf("Promote(rook): %v", err)
	}

	snap := g.Snapshot()
	if snap.PendingPromotion {
		t.Error("PendingPromotion still set")
	}
	if snap.ToMove != Black {
		t.Errorf("ToMove = %s; want black", snap.ToMove)
	}
	// Rook on a8 gives check along the back rank.
	if !snap.IsCheck {
		t.Error("IsCheck = false; want true")
	}
}

func TestGameOpponentMayDeclinePromotion(t *testing.T) {
	g := NewGame("g1")
	g.engine = NewEngine(newTestBoard(t,
		NewPiece(King, White, at(5, 1)),
		NewPiece(King, Black, at(5, 8)),
		NewPiece(Pawn, White, at(1, 7)),
	))
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.MakeMove("alice", MoveRequest{From: at(1, 7), To: at(1, 8)}); err != nil {
		t.Fatalf("MakeMove a7-a8: %v", err)
	}
	if err := g.MakeMove("bob", MoveRequest{From: at(5, 8), To: at(4, 7)}); err != nil {
		t.Fatalf("black reply with promotion unresolved: %v", err)
	}
	if err := g.Promote("alice", PromoteQueen); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Promote after black replied error = %v; want %v", err, ErrNotYourTurn)
	}
	if snap := g.Snapshot(); snap.PendingPromotion || snap.ToMove != White {
		t.Errorf("pending=%v toMove=%s; want false, white", snap.PendingPromotion, snap.ToMove)
	}
}

func TestGamePreviewMoves(t *testing.T) {
	g := NewGame("g1")
	got := sortCoordinates(g.PreviewMoves(at(7, 1)))
	want := []Coordinate{at(6, 3), at(8, 3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PreviewMoves(g1) mismatch (-want +got):\n%s", diff)
	}
	if got := g.PreviewMoves(at(4, 4)); len(got) != 0 {
		t.Errorf("PreviewMoves on empty square = %v; want none", got)
	}
}

func TestRegisterConnectionRequiresPlayerID(t *testing.T) {
	g := NewGame("g1")
	if err := g.RegisterConnection("", nil); !errors.Is(err, ErrNotAPlayer) {
		t.Errorf("RegisterConnection(\"\") error = %v; want %v", err, ErrNotAPlayer)
	}
	if err := g.Send("alice", ws.Message{Type: ws.MessageTypeError}); !errors.Is(err, ErrNotAPlayer) {
		t.Errorf("Send without connection error = %v; want %v", err, ErrNotAPlayer)
	}
}
