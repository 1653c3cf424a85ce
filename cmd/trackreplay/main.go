// Package main provides the trackreplay tool. It replays recorded point
// batches through a position tracker, prints the identity assigned to
// every point, and can archive the whole session to a sqlite database.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/pointtrack/internal/config"
	"github.com/banshee-data/pointtrack/internal/replay"
	"github.com/banshee-data/pointtrack/internal/track"
	"github.com/banshee-data/pointtrack/internal/trackdb"
	"github.com/banshee-data/pointtrack/internal/version"
)

// Config holds the replay run configuration.
type Config struct {
	Input         string
	Format        string
	TuningFile    string
	DBPath        string
	MigrationsDir string
	Quiet         bool
	ShowVersion   bool
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Input, "input", "-", "Input file of recorded frames, or - for stdin")
	flag.StringVar(&cfg.Format, "format", "jsonl", "Input format: jsonl or csv")
	flag.StringVar(&cfg.TuningFile, "config", "", "Optional tuning JSON file")
	flag.StringVar(&cfg.DBPath, "db", "", "Archive session to this sqlite database (overrides tuning db_path)")
	flag.StringVar(&cfg.MigrationsDir, "migrations", "migrations", "Directory with schema migration files")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress per-point output")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Println("trackreplay", version.String())
		return
	}

	tuning := config.EmptyTuningConfig()
	if cfg.TuningFile != "" {
		loaded, err := config.LoadTuningConfig(cfg.TuningFile)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
		tuning = loaded
	}

	frames, err := readFrames(cfg)
	if err != nil {
		log.Fatalf("Failed to read frames: %v", err)
	}
	if len(frames) == 0 {
		log.Fatal("No frames in input")
	}

	dbPath := cfg.DBPath
	if dbPath == "" && tuning.GetPersistTracks() {
		dbPath = tuning.GetDBPath()
	}

	var recorder *trackdb.Recorder
	if dbPath != "" {
		db, err := trackdb.Open(dbPath)
		if err != nil {
			log.Fatalf("Failed to open archive database: %v", err)
		}
		defer db.Close()

		if err := db.MigrateUp(cfg.MigrationsDir); err != nil {
			log.Fatalf("Failed to migrate archive database: %v", err)
		}

		recorder, err = trackdb.NewRecorder(db, cfg.Input)
		if err != nil {
			log.Fatalf("Failed to create session recorder: %v", err)
		}
		log.Printf("Recording session %s to %s", recorder.SessionID(), dbPath)
	}

	trackerCfg := track.DefaultTrackerConfig()
	trackerCfg.SentinelCoord = tuning.GetSentinelCoord()
	tracker := track.NewPositionTrackerWithConfig[float64](trackerCfg)

	maxBatch := tuning.GetMaxBatchPoints()
	logEvery := tuning.GetLogEveryFrames()

	for fi, frame := range frames {
		if frame.Len() == 0 {
			// The tracker requires at least one point per tick; an empty
			// frame is an observation gap, carried over as unchanged state.
			continue
		}
		if frame.Len() > maxBatch {
			log.Fatalf("Frame %d has %d points, exceeding max_batch_points %d", fi, frame.Len(), maxBatch)
		}

		if err := tracker.PushData(frame.XS, frame.YS); err != nil {
			log.Fatalf("Frame %d rejected: %v", fi, err)
		}

		if !cfg.Quiet {
			for i := range frame.XS {
				id := tracker.GetID(frame.XS[i], frame.YS[i])
				fmt.Printf("frame=%d id=%d x=%g y=%g\n", fi, id, frame.XS[i], frame.YS[i])
			}
		}
		if recorder != nil {
			if err := recorder.RecordFrame(fi, tracker.Snapshot()); err != nil {
				log.Fatalf("Failed to record frame %d: %v", fi, err)
			}
		}
		if logEvery > 0 && (fi+1)%logEvery == 0 {
			log.Printf("Processed %d/%d frames, tracking %d points", fi+1, len(frames), tracker.Count())
		}
	}

	if recorder != nil {
		framesRecorded, born, retired := recorder.Stats()
		log.Printf("Session %s: %d frames, %d identities born, %d retired",
			recorder.SessionID(), framesRecorded, born, retired)
	}
}

func readFrames(cfg Config) ([]replay.Frame, error) {
	var r io.Reader
	if cfg.Input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch strings.ToLower(cfg.Format) {
	case "jsonl":
		return replay.ReadJSONL(r)
	case "csv":
		return replay.ReadCSV(r)
	default:
		return nil, fmt.Errorf("unknown format %q (want jsonl or csv)", cfg.Format)
	}
}
