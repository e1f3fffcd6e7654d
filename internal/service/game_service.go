package service

import (
	"fmt"

	"github.com/benbeisheim/chess-rules/internal/model"
	"github.com/benbeisheim/chess-rules/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PieceColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameSnapshot, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.MoveRequest) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return fmt.Errorf("move %s to %s: %w", move.From, move.To, err)
	}

	return nil
}

func (gs *GameService) HandlePromotion(gameID string, playerID string, choice model.SpecialMove) error {
	if err := gs.gameManager.Promote(gameID, playerID, choice); err != nil {
		return fmt.Errorf("promote to %s: %w", choice, err)
	}
	return nil
}

func (gs *GameService) PreviewMoves(gameID string, from model.Coordinate) ([]model.Coordinate, error) {
	return gs.gameManager.PreviewMoves(gameID, from)
}

// SendPreview answers a websocket preview request on the player's own
// connection.
func (gs *GameService) SendPreview(gameID string, playerID string, from model.Coordinate) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	msg, err := ws.NewMessage(ws.MessageTypePreview, PreviewResponse{From: from, Moves: game.PreviewMoves(from)})
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

type PreviewResponse struct {
	From  model.Coordinate   `json:"from"`
	Moves []model.Coordinate `json:"moves"`
}
