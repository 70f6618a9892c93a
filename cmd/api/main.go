package main

import (
	"os"

	"github.com/tmorrow/schoolmock/internal/pkg/logger"
	"github.com/tmorrow/schoolmock/internal/server"
)

// @title School Mock Data API
// @version 1.0
// @description Mock school administration API serving a generated dataset of schools, students, enrolments, attendances and incidents.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
