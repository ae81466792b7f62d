package main

import (
	"log"
	"os"

	"boat-ticketing/cmd"
	"boat-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := cmd.NewApp(config, logger).Run(os.Args); err != nil {
		logger.Fatal("Application stopped", zap.Error(err))
	}
}
