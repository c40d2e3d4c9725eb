package main

import (
	"fmt"
	"io"

	digitizer "github.com/next-exp/digitizer_go/pkg"
)

type WorkerData struct {
	Header  EventHeaderStruct
	Sources []digitizer.Source
}

// Each event is digitized with a generator seeded from the configured
// seed and the event id, so the output does not depend on which worker
// picks the event up or in what order.
func eventSeed(eventID uint32) uint64 {
	return configuration.RandomSeed + uint64(eventID)
}

func worker(id int, jobs <-chan WorkerData, results chan<- digitizer.EventType) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("Worker %d recovered from panic: %v", id, r))
			results <- digitizer.EventType{Error: true}
		}
	}()

	for job := range jobs {
		if configuration.Verbosity > 0 {
			logger.Info(fmt.Sprintf("Worker %d processing event %d", id, job.Header.EventId), "worker")
		}
		seed := eventSeed(job.Header.EventId)
		d := digitizer.NewDigitizer(configuration, seed)
		collection, err := d.Digitize(job.Sources)
		if err != nil {
			// A fatal condition aborts this event only, nothing
			// partial gets published.
			logger.Error(fmt.Sprintf("Event %d aborted: %v", job.Header.EventId, err))
			results <- digitizer.EventType{EventID: job.Header.EventId, Error: true}
			continue
		}
		results <- digitizer.EventType{
			RunNumber: job.Header.EventRunNb,
			EventID:   job.Header.EventId,
			Timestamp: job.Header.EventTime,
			Digits:    collection,
			Params:    digitizer.Snapshot(configuration, seed),
		}
	}
}

func sendEventsToWorkers(fileReader *FileReader, jobs chan<- WorkerData) {
	for {
		header, sources, err := fileReader.getNextEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Error reading event: %v", err))
			break
		}
		jobs <- WorkerData{Header: header, Sources: sources}
	}
	close(jobs)
}

func processWorkerResults(results chan digitizer.EventType, writer *digitizer.Writer, evtsToRead int) {
	evtsProcessed := 0
	for event := range results {
		if configuration.Verbosity > 0 {
			logger.Info(fmt.Sprintf("Processed event %d (%d/%d)", event.EventID, evtsProcessed+1, evtsToRead), "worker")
		}
		if configuration.WriteData && !event.Error {
			writer.WriteEvent(&event)
			if configuration.Verbosity > 1 {
				digitizer.PrintDigits(event.Digits)
			}
		}

		evtsProcessed++
		if evtsProcessed >= evtsToRead {
			break
		}
	}
}
