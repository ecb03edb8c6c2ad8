package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrPlayerNotFound     = errors.New("Player not found")
	ErrDeveloperNotFound  = errors.New("Developer not found")
	ErrGameNotFound       = errors.New("Game not found")
	ErrTournamentNotFound = errors.New("Tournament not found")
	ErrMembershipRequired = errors.New("Only premium or elite members can register for tournaments")
	ErrScheduleConflict   = errors.New("Player already has a tournament registered on this date")
)

// ValidationError marks a malformed, missing or out-of-range request field.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// httpStatus maps a workflow error onto the response status code.
func httpStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrMembershipRequired):
		return fiber.StatusForbidden
	case errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrDeveloperNotFound),
		errors.Is(err, ErrGameNotFound),
		errors.Is(err, ErrTournamentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrScheduleConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(httpStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// isUniqueViolation matches unique-index errors from both the postgres driver
// and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
