package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	digitizer "github.com/next-exp/digitizer_go/pkg"
)

var dbConn *sqlx.DB
var configuration digitizer.Configuration
var logger Logger

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	digitizer.SetConfiguration(configuration)
	digitizer.SetLogger(logger)

	if configuration.Verbosity > 0 {
		printConfiguration(configuration, logger.InfoLog)
	}

	if !configuration.NoDB {
		dbConn, err = digitizer.ConnectToDatabase(configuration.User, configuration.Passwd,
			configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		err = digitizer.LoadDatabase(dbConn, configuration.RunNumber)
		if err != nil {
			return
		}
		// Parameters valid for the run override the config file ones
		configuration = digitizer.GetConfiguration()
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening input file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	evtsToRead := countEvents(file)
	logger.Info(fmt.Sprintf("Number of events in file: %d", evtsToRead), "main")
	if configuration.MaxEvents < evtsToRead {
		evtsToRead = configuration.MaxEvents
	}
	evtsToRead -= configuration.Skip
	if evtsToRead <= 0 {
		logger.Info("Nothing to process", "main")
		return
	}

	var writer *digitizer.Writer
	if configuration.WriteData {
		writer = digitizer.NewWriter(configuration.FileOut)
		defer writer.Close()
	}

	jobs := make(chan WorkerData, configuration.NumWorkers)
	results := make(chan digitizer.EventType, 1000)

	numWorkers := configuration.NumWorkers
	if !configuration.Parallel {
		numWorkers = 1
	}
	for w := 1; w <= numWorkers; w++ {
		go worker(w, jobs, results)
	}

	fileReader := NewFileReader(file)

	start := time.Now()
	go sendEventsToWorkers(fileReader, jobs)
	processWorkerResults(results, writer, evtsToRead)

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")
}
