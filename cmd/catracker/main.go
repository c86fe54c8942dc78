// Command catracker is the thin CLI driver around the tracker core: it
// loads tuning constants, parses an ASCII event file (and optional
// label file), runs the pipeline per event, and prints a one-line
// per-vertex road summary. The core itself never touches a file or a
// flag.
package main

import (
	"flag"
	"log"

	"github.com/catrack/catracker/internal/tracker"
	"github.com/catrack/catracker/internal/tracker/ioutil"
	"github.com/catrack/catracker/internal/tracker/tuning"
)

func main() {
	eventsPath := flag.String("events", "", "path to the ASCII event file")
	labelsPath := flag.String("labels", "", "path to the optional MC label file")
	configPath := flag.String("config", "", "path to a tuning config JSON file (config/tracker.defaults.json if empty)")
	concurrency := flag.Int("concurrency", 1, "number of vertex workers run in parallel per event")
	flag.Parse()

	if *eventsPath == "" {
		log.Fatalf("catracker: -events is required")
	}

	cfg := tuning.MustLoadDefaultConfig()
	if *configPath != "" {
		loaded, err := tuning.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("catracker: load config: %v", err)
		}
		cfg = loaded
	}

	events, err := ioutil.LoadEvents(*eventsPath)
	if err != nil {
		log.Fatalf("catracker: load events: %v", err)
	}

	if *labelsPath != "" {
		lookups, err := ioutil.LoadLabels(*labelsPath)
		if err != nil {
			log.Fatalf("catracker: load labels: %v", err)
		}
		log.Printf("catracker: loaded %d label blocks", len(lookups))
	}

	drv := tracker.NewDriver(cfg)
	drv.Concurrency = *concurrency

	for i := range events {
		roads := drv.RunEvent(&events[i])
		total := 0
		for vi, vr := range roads {
			total += len(vr)
			log.Printf("catracker: event %d vertex %d: %d roads", events[i].ID, vi, len(vr))
		}
		log.Printf("catracker: event %d: %d roads total", events[i].ID, total)
	}
}
