// handlers/game.go
package handlers

import (
	"game-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	app.Get("/games", gameService.GetAllGames)
	app.Get("/games/:id", gameService.GetGameByID)
	app.Post("/games", gameService.CreateGame)
	app.Patch("/games/:id", gameService.UpdateGame)
	app.Delete("/games/:id", gameService.DeleteGame)

	app.Post("/games/:id/cover", gameService.UploadCover)
}
