package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"game-tournament-system/models"
	"game-tournament-system/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	SetupGameRoutes(app, services.NewGameService(db))
	SetupPlayerRoutes(app, services.NewPlayerService(db))
	SetupDeveloperRoutes(app, services.NewDeveloperService(db))
	SetupTournamentRoutes(app, services.NewTournamentService(db))
	return app
}

// doJSON performs a request and returns the status code and raw body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out.Bytes()
}

func decodeMap(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return m
}

func decodeList(t *testing.T, body []byte) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return list
}

func createEntity(t *testing.T, app *fiber.App, path string, body map[string]interface{}) string {
	t.Helper()
	status, respBody := doJSON(t, app, "POST", path, body)
	if status != fiber.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d (%s)", path, status, respBody)
	}
	id, _ := decodeMap(t, respBody)["id"].(string)
	if id == "" {
		t.Fatalf("POST %s: no id in response %s", path, respBody)
	}
	return id
}

func TestGameCreateAndRoundTrip(t *testing.T) {
	app := setupApp(t)

	id := createEntity(t, app, "/games", map[string]interface{}{
		"title": "Empire Builder",
		"genre": "Strategy",
	})

	status, body := doJSON(t, app, "GET", "/games/"+id, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	game := decodeMap(t, body)
	if game["title"] != "Empire Builder" || game["genre"] != "Strategy" {
		t.Fatalf("round trip mismatch: %v", game)
	}
	if _, present := game["rating"]; present {
		t.Fatalf("rating should be absent when not supplied: %v", game)
	}
	if game["multiplayer"] != false {
		t.Fatalf("multiplayer should default to false: %v", game)
	}
}

func TestGameCreateRejectsUnknownGenre(t *testing.T) {
	app := setupApp(t)

	status, body := doJSON(t, app, "POST", "/games", map[string]interface{}{
		"title": "Box World",
		"genre": "Sandbox",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", status, body)
	}
}

func TestGamePatchAllowList(t *testing.T) {
	app := setupApp(t)
	id := createEntity(t, app, "/games", map[string]interface{}{
		"title": "Fast Frag", "genre": "FPS",
	})

	// Out-of-range rating is rejected.
	status, _ := doJSON(t, app, "PATCH", "/games/"+id, map[string]interface{}{"rating": 11})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for rating 11, got %d", status)
	}

	// Unknown fields (including id) are silently ignored; known ones apply.
	status, body := doJSON(t, app, "PATCH", "/games/"+id, map[string]interface{}{
		"id": "hijacked", "genre": "Puzzle", "rating": 7.5,
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, body)
	}
	game := decodeMap(t, body)
	if game["id"] != id {
		t.Fatalf("id must not be mutable, got %v", game["id"])
	}
	if game["genre"] != "Puzzle" || game["rating"] != 7.5 {
		t.Fatalf("patch not applied: %v", game)
	}
}

func TestGameDeleteNotFound(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, "DELETE", "/games/missing", nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	id := createEntity(t, app, "/games", map[string]interface{}{"title": "Life Sim", "genre": "Simulation"})
	if status, _ := doJSON(t, app, "DELETE", "/games/"+id, nil); status != fiber.StatusOK {
		t.Fatalf("expected 200 deleting existing game, got %d", status)
	}
	if status, _ := doJSON(t, app, "GET", "/games/"+id, nil); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestPlayerDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	createEntity(t, app, "/players", map[string]interface{}{
		"name": "Alice Smith", "email": "alice@example.com",
	})
	status, body := doJSON(t, app, "POST", "/players", map[string]interface{}{
		"name": "Alice Clone", "email": "alice@example.com",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d (%s)", status, body)
	}
}

func TestPlayerListFilters(t *testing.T) {
	app := setupApp(t)

	createEntity(t, app, "/players", map[string]interface{}{
		"name": "Alice", "email": "alice@example.com", "membershipLevel": "elite",
	})
	createEntity(t, app, "/players", map[string]interface{}{
		"name": "Bob", "email": "bob@example.com", "membershipLevel": "premium",
	})
	createEntity(t, app, "/players", map[string]interface{}{
		"name": "Ethan", "email": "ethan@example.com", "membershipLevel": "elite", "active": false,
	})

	status, body := doJSON(t, app, "GET", "/players?membershipLevel=elite", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := len(decodeList(t, body)); got != 2 {
		t.Fatalf("expected 2 elite players, got %d", got)
	}

	_, body = doJSON(t, app, "GET", "/players?membershipLevel=elite&active=true", nil)
	if got := len(decodeList(t, body)); got != 1 {
		t.Fatalf("expected 1 active elite player, got %d", got)
	}
}

func TestDeveloperValidation(t *testing.T) {
	app := setupApp(t)

	cases := []map[string]interface{}{
		{"name": "NoRate", "email": "a@example.com"},                                              // hourlyRate missing
		{"name": "Cheap", "email": "b@example.com", "hourlyRate": 5},                              // below minimum
		{"name": "Newbie", "email": "c@example.com", "hourlyRate": 20, "experienceYears": 0},      // experience < 1
		{"name": "Odd", "email": "d@example.com", "hourlyRate": 20, "specializations": []string{"Sports"}}, // bad genre
	}
	for i, body := range cases {
		if status, resp := doJSON(t, app, "POST", "/developers", body); status != fiber.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d (%s)", i, status, resp)
		}
	}

	createEntity(t, app, "/developers", map[string]interface{}{
		"name": "Indie Studio", "email": "dev@example.com", "hourlyRate": 30,
		"specializations": []string{"Puzzle"}, "experienceYears": 5,
	})
}

func TestDeveloperSpecializationFilter(t *testing.T) {
	app := setupApp(t)

	createEntity(t, app, "/developers", map[string]interface{}{
		"name": "RPG House", "email": "rpg@example.com", "hourlyRate": 50,
		"specializations": []string{"RPG", "FPS"},
	})
	createEntity(t, app, "/developers", map[string]interface{}{
		"name": "Puzzle Co", "email": "puzzle@example.com", "hourlyRate": 30,
		"specializations": []string{"Puzzle"}, "available": false,
	})

	_, body := doJSON(t, app, "GET", "/developers?specialization=RPG", nil)
	list := decodeList(t, body)
	if len(list) != 1 || list[0]["name"] != "RPG House" {
		t.Fatalf("expected only RPG House, got %v", list)
	}

	_, body = doJSON(t, app, "GET", "/developers?available=false", nil)
	list = decodeList(t, body)
	if len(list) != 1 || list[0]["name"] != "Puzzle Co" {
		t.Fatalf("expected only Puzzle Co, got %v", list)
	}
}

// seedRegistrationFixtures creates an eligible player plus a developer and a
// game, returning their ids.
func seedRegistrationFixtures(t *testing.T, app *fiber.App, level string) (string, string, string) {
	t.Helper()
	player := createEntity(t, app, "/players", map[string]interface{}{
		"name": "Player " + level, "email": level + "@example.com", "membershipLevel": level,
	})
	developer := createEntity(t, app, "/developers", map[string]interface{}{
		"name": "Studio " + level, "email": "studio-" + level + "@example.com", "hourlyRate": 40,
	})
	game := createEntity(t, app, "/games", map[string]interface{}{
		"title": "Game " + level, "genre": "RPG",
	})
	return player, developer, game
}

func TestRegistrationEndpointSuccessAndConflict(t *testing.T) {
	app := setupApp(t)
	player, developer, game := seedRegistrationFixtures(t, app, "elite")

	status, body := doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": developer, "gameId": game,
		"tournamentDate": "2025-03-01",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, body)
	}
	registration, _ := decodeMap(t, body)["registration"].(map[string]interface{})
	if registration["status"] != "registered" {
		t.Fatalf("expected status registered, got %v", registration)
	}

	// Same player and day with a different game and developer still conflicts.
	otherDeveloper := createEntity(t, app, "/developers", map[string]interface{}{
		"name": "Other Studio", "email": "other@example.com", "hourlyRate": 60,
	})
	otherGame := createEntity(t, app, "/games", map[string]interface{}{
		"title": "Other Game", "genre": "FPS",
	})
	status, body = doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": otherDeveloper, "gameId": otherGame,
		"tournamentDate": "2025-03-01T18:00:00Z",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", status, body)
	}
}

func TestRegistrationEndpointFreeMember(t *testing.T) {
	app := setupApp(t)
	player, developer, game := seedRegistrationFixtures(t, app, "free")

	status, body := doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": developer, "gameId": game,
		"tournamentDate": "2025-03-01",
	})
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d (%s)", status, body)
	}

	_, listBody := doJSON(t, app, "GET", "/tournaments", nil)
	if got := len(decodeList(t, listBody)); got != 0 {
		t.Fatalf("expected no tournaments after 403, got %d", got)
	}
}

func TestTournamentListingFilterAndEnrichment(t *testing.T) {
	app := setupApp(t)
	playerA, developerA, gameA := seedRegistrationFixtures(t, app, "elite")
	playerB, developerB, gameB := seedRegistrationFixtures(t, app, "premium")

	for _, reg := range []map[string]interface{}{
		{"playerId": playerA, "developerId": developerA, "gameId": gameA, "tournamentDate": "2025-03-01"},
		{"playerId": playerB, "developerId": developerB, "gameId": gameB, "tournamentDate": "2025-03-01"},
	} {
		if status, body := doJSON(t, app, "POST", "/tournaments/register", reg); status != fiber.StatusCreated {
			t.Fatalf("register: expected 201, got %d (%s)", status, body)
		}
	}

	status, body := doJSON(t, app, "GET", "/tournaments?developerId="+developerA, nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	list := decodeList(t, body)
	if len(list) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(list))
	}
	entry := list[0]
	playerSummary, _ := entry["player"].(map[string]interface{})
	if playerSummary["name"] != "Player elite" || playerSummary["email"] != "elite@example.com" {
		t.Fatalf("unexpected player summary: %v", entry["player"])
	}
	developerSummary, _ := entry["developer"].(map[string]interface{})
	if developerSummary["name"] != "Studio elite" {
		t.Fatalf("unexpected developer summary: %v", entry["developer"])
	}
	gameSummary, _ := entry["game"].(map[string]interface{})
	if gameSummary["title"] != "Game elite" || gameSummary["genre"] != "RPG" {
		t.Fatalf("unexpected game summary: %v", entry["game"])
	}
}

func TestTournamentStatusLifecycle(t *testing.T) {
	app := setupApp(t)
	player, developer, game := seedRegistrationFixtures(t, app, "elite")

	status, body := doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": developer, "gameId": game,
		"tournamentDate": "2025-03-01",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, body)
	}
	registration, _ := decodeMap(t, body)["registration"].(map[string]interface{})
	id, _ := registration["id"].(string)

	if status, _ := doJSON(t, app, "PATCH", "/tournaments/"+id+"/status",
		map[string]interface{}{"status": "paused"}); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", status)
	}

	status, body = doJSON(t, app, "PATCH", "/tournaments/"+id+"/status",
		map[string]interface{}{"status": "cancelled"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, body)
	}

	// The cancelled record no longer blocks the day.
	status, body = doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": developer, "gameId": game,
		"tournamentDate": "2025-03-01",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 after cancellation, got %d (%s)", status, body)
	}

	if status, _ := doJSON(t, app, "PATCH", "/tournaments/missing/status",
		map[string]interface{}{"status": "completed"}); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing tournament, got %d", status)
	}
}

func TestRegistrationEndpointBadDate(t *testing.T) {
	app := setupApp(t)
	player, developer, game := seedRegistrationFixtures(t, app, "elite")

	status, body := doJSON(t, app, "POST", "/tournaments/register", map[string]interface{}{
		"playerId": player, "developerId": developer, "gameId": game,
		"tournamentDate": "March 1st",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", status, body)
	}
	if msg := fmt.Sprintf("%v", decodeMap(t, body)["error"]); msg == "" {
		t.Fatal("expected error message in body")
	}
}
