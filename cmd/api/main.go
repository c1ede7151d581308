package main

import (
	"os"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/logger"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/server"
)

// @title FYUGP Course Allotment API
// @version 1.0
// @description API for capturing ranked course preferences and running semester batch allotments under the four-year undergraduate programme.

// @contact.name API Support
// @contact.email support@college.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
