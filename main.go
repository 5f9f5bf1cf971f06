package main

import (
	"os"

	"archivestats/cmd"
	"archivestats/config"
	"archivestats/pkg/logger"
)

func main() {
	cnf, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cmd.Execute(cnf); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to summarize archive listing")
		os.Exit(1)
	}
}
