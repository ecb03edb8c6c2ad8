package handlers

import (
	"game-tournament-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournamentService *services.TournamentService) {
	// Registration workflow — tournaments are only ever created through it
	app.Post("/tournaments/register", tournamentService.RegisterTournament)

	app.Get("/tournaments", tournamentService.GetTournaments)
	app.Get("/tournaments/:id", tournamentService.GetTournamentByID)

	// Status lifecycle: registered → completed / cancelled
	app.Patch("/tournaments/:id/status", tournamentService.UpdateTournamentStatus)
}
