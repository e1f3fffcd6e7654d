package main

import (
	"flag"
	"os"

	"github.com/benbeisheim/chess-rules/internal/controller"
	"github.com/benbeisheim/chess-rules/internal/middleware"
	"github.com/benbeisheim/chess-rules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

type config struct {
	addr   string
	origin string
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.addr, "addr", envOr("CHESS_ADDR", ":8080"), "listen address")
	flag.StringVar(&cfg.origin, "origin", envOr("CHESS_ALLOWED_ORIGIN", "http://localhost:5173"), "allowed CORS/websocket origin")
	flag.Parse()
	return cfg
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newApp(cfg config, gameService *service.GameService) *fiber.App {
	app := fiber.New(fiber.Config{
		Immutable: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.origin},
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Post("/games", gameController.CreateGame)
	api.Post("/games/:gameId/join", gameController.JoinGame)
	api.Get("/games/:gameId", gameController.GetGameState)
	api.Get("/games/:gameId/preview", gameController.PreviewMoves)
	api.Post("/games/:gameId/move", gameController.MakeMove)
	api.Post("/games/:gameId/promote", gameController.Promote)

	return app
}

func main() {
	cfg := loadConfig()

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	app := newApp(cfg, gameService)
	log.Infof("listening on %s", cfg.addr)
	log.Fatal(app.Listen(cfg.addr))
}
