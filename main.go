package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tilelayout/pkg/engine/terminal"
	"tilelayout/pkg/layout/config"
	"tilelayout/pkg/layout/devtools"
	"tilelayout/pkg/layout/generator"
	"tilelayout/pkg/layout/pipeline"
	"tilelayout/pkg/layout/render"
	"tilelayout/pkg/layout/state"
	"tilelayout/pkg/layout/viewer"
)

// Rows kept free under the map for the header, legend and summary.
const reservedRows = 12

// Smallest map side the CLI will shrink a layout to.
const minMapSide = 20

func main() {
	configPath := flag.String("config", "", "YAML configuration file (defaults are built in)")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock unless the config sets one)")
	width := flag.Int("width", 0, "map width in tiles (floor mode)")
	height := flag.Int("height", 0, "map height in tiles (floor mode)")
	mode := flag.String("mode", "", "generator: floor or grid")
	dump := flag.String("dump", "", "write a plain-text debug dump to this file")
	useColor := flag.Bool("color", terminal.IsTerminal(), "color the output")
	view := flag.Bool("view", false, "step through the generation in a terminal viewer")
	strict := flag.Bool("strict", false, "fail when the audit finds a disconnected layout")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	verbose := flag.Bool("v", false, "log generation details to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "tilelayout: ", 0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if *mode != "" {
		cfg.Mode = strings.ToLower(*mode)
	}
	if *strict {
		cfg.Audit.Strict = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	switch {
	case set["width"] || set["height"]:
		if *width > 0 {
			cfg.Width = *width
		}
		if *height > 0 {
			cfg.Height = *height
		}
	case *configPath == "" && terminal.IsTerminal():
		cfg.Width, cfg.Height = terminal.FitMap(cfg.Width, cfg.Height, reservedRows, minMapSide)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			logger.Fatal(err)
		}
		os.Stdout.Write(data)
		return
	}

	g, err := generator.FromConfig(cfg)
	if err != nil {
		logger.Fatal(err)
	}

	printer := render.New(*useColor)
	var recorder *viewer.Recorder
	if *view {
		recorder = viewer.NewRecorder(printer)
	}

	var genLogger *log.Logger
	if *verbose {
		genLogger = logger
	}

	var observer pipeline.Observer[*state.Layout]
	if recorder != nil {
		observer = recorder.Observe
	}
	l, err := generator.Generate(g, cfg.Seed, genLogger, observer)
	if err != nil {
		logger.Fatal(err)
	}

	if *dump != "" {
		path, err := devtools.DumpToFile(l, g.Name(), *dump)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("layout dumped to %s", path)
	}

	if recorder != nil {
		if err := viewer.Run(g.Name(), recorder.Snapshots); err != nil {
			logger.Fatal(err)
		}
		return
	}

	fmt.Print(printer.Layout(l, g.Name()))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
