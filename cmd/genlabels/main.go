package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/nvr-ai/go-labels/dataset"
	"github.com/nvr-ai/go-labels/labels"
)

func main() {
	parser := argparse.NewParser("genlabels", "Encode per-frame box annotations into YOLO grid targets")
	annotationsPath := parser.String("a", "annotations", &argparse.Options{Help: "Per-frame annotation JSON file", Required: true})
	imageDir := parser.String("i", "images", &argparse.Options{Help: "Directory of frame-<n> images", Required: true})
	configPath := parser.String("c", "config", &argparse.Options{Help: "YAML label config", Required: false, Default: ""})
	cellSize := parser.Int("", "cell", &argparse.Options{Help: "Cell width and height in pixels (overrides config)", Required: false, Default: 0})
	paddedSize := parser.Int("", "padded", &argparse.Options{Help: "Padded canvas size in pixels (overrides config)", Required: false, Default: 0})
	threshold := parser.Float("", "threshold", &argparse.Options{Help: "Intersection threshold in [0,1] (overrides config)", Required: false, Default: -1.0})
	minScore := parser.Float("", "min-score", &argparse.Options{Help: "Drop annotations below this labeller score", Required: false, Default: 0.0})
	workers := parser.Int("w", "workers", &argparse.Options{Help: "Number of encoding threads", Required: false, Default: runtime.NumCPU()})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	config := labels.DefaultConfig()
	if *configPath != "" {
		config, err = labels.LoadConfig(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}
	if *cellSize > 0 {
		config.CellWidth = *cellSize
		config.CellHeight = *cellSize
	}
	if *paddedSize > 0 {
		config.PaddedSize = *paddedSize
	}
	if *threshold >= 0 {
		config.IntersectionThreshold = float32(*threshold)
	}

	encoder, err := labels.NewEncoder(config, logger)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	source, err := dataset.NewFrameSource(*annotationsPath, *imageDir)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	source.MinScore = float32(*minScore)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ids := source.IDs()
	logger.Infof("Encoding %d frames (%dx%d cells on a %d canvas, threshold %v)",
		len(ids), config.CellWidth, config.CellHeight, config.PaddedSize, config.IntersectionThreshold)

	samples, err := dataset.NewGenerator(source, encoder, *workers, logger).Generate(ctx, ids)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	for _, sample := range samples {
		// Decode skips zero-size boxes centered exactly on a cell corner, so the
		// box count can be lower than the frame's annotation count.
		logger.Infof("Frame %d: %d present cells, %d decoded boxes",
			sample.ID,
			len(sample.Grid.PresentCells(config.HasObjectWeight)),
			len(labels.Decode(sample.Grid, config)))
	}
}
