package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	digitizer "github.com/next-exp/digitizer_go/pkg"
)

func LoadConfiguration(filename string) (digitizer.Configuration, error) {
	var config digitizer.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.Skip = 0
	config.RunNumber = 0
	config.NPmts = 60
	config.NSipms = 3584
	config.PmtNoiseSigma = 0.01
	config.SipmNoiseSigma = 0.01
	config.PmtThreshold = 0.01
	config.SipmThreshold = 0.09
	config.PmtPedestal = 0
	config.PmtSlope = 10000000
	config.SipmPedestal = 0
	config.SipmSlope = 10000000
	config.OffsetStrategy = digitizer.OffsetFixedMultiplier
	config.OffsetMultiplier = digitizer.DefaultOffsetMultiplier
	config.RandomSeed = 123456789
	config.NoDB = false
	config.Host = "next.ific.uv.es"
	config.User = "nextreader"
	config.Passwd = "readonly"
	config.DBName = "NEXT100"
	config.NumWorkers = 1
	config.WriteData = true
	config.Parallel = false
	config.CompressionLevel = 4

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config digitizer.Configuration, logger *slog.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "module", "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "module", "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "module", "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "module", "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "module", "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "module", "config")
	logger.Info(fmt.Sprintf("PMT channels: %d", config.NPmts), "module", "config")
	logger.Info(fmt.Sprintf("SiPM channels: %d", config.NSipms), "module", "config")
	logger.Info(fmt.Sprintf("PMT noise sigma: %g", config.PmtNoiseSigma), "module", "config")
	logger.Info(fmt.Sprintf("SiPM noise sigma: %g", config.SipmNoiseSigma), "module", "config")
	logger.Info(fmt.Sprintf("PMT threshold: %g", config.PmtThreshold), "module", "config")
	logger.Info(fmt.Sprintf("SiPM threshold: %g", config.SipmThreshold), "module", "config")
	logger.Info(fmt.Sprintf("Offset strategy: %s", config.OffsetStrategy), "module", "config")
	logger.Info(fmt.Sprintf("Offset multiplier: %d", config.OffsetMultiplier), "module", "config")
	logger.Info(fmt.Sprintf("Random seed: %d", config.RandomSeed), "module", "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "module", "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "module", "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "module", "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "module", "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "module", "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "module", "config")
}
