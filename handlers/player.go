package handlers

import (
	"game-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	app.Get("/players", playerService.GetPlayers)
	app.Get("/players/:id", playerService.GetPlayerByID)
	app.Post("/players", playerService.CreatePlayer)
	app.Patch("/players/:id", playerService.UpdatePlayer)
	app.Delete("/players/:id", playerService.DeletePlayer)
}
