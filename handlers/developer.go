package handlers

import (
	"game-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDeveloperRoutes(app *fiber.App, developerService *services.DeveloperService) {
	app.Get("/developers", developerService.GetDevelopers)
	app.Get("/developers/:id", developerService.GetDeveloperByID)
	app.Post("/developers", developerService.CreateDeveloper)
	app.Patch("/developers/:id", developerService.UpdateDeveloper)
	app.Delete("/developers/:id", developerService.DeleteDeveloper)
}
