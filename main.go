package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/models"
	"github.com/givehub/backend/internal/router"
	"github.com/givehub/backend/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title						GiveHub backend
// @description				The backend for GiveHub, a donation management platform.
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Server.Mode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.Server.LogFormat == "human" || (cfg.Server.LogFormat == "" && gin.IsDebugging()) {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory for the sqlite database
	if cfg.Database.Host == "" {
		err := os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	err = models.Connect(models.ConnectionOptions{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Path:     cfg.Database.Path,
	})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	manager, err := task.NewManager(cfg.Audit.RetentionDays)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	manager.Start()
	defer manager.Stop()

	r, err := router.Router(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
