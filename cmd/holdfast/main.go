// Command holdfast runs the headless simulation core: it wires
// configuration, the world grid, and the simulation driver together and
// steps the tick loop. A presentation layer (window, input, rendering) is
// an external collaborator this binary never implements.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oakmere/holdfast/internal/config"
	"github.com/oakmere/holdfast/internal/sim"
	"github.com/oakmere/holdfast/internal/simlog"
	"github.com/oakmere/holdfast/internal/worldmap"
)

func main() {
	headless := flag.Bool("headless", false, "disable presentation; run the simulation core only")
	configPath := flag.String("config", "", "path to the balance configuration file (optional; defaults used if omitted)")
	seed := flag.Int64("seed", 1, "seed for the deterministic random source")
	width := flag.Int("width", 64, "world grid width in tiles")
	height := flag.Int("height", 64, "world grid height in tiles")
	ticks := flag.Int64("ticks", 0, "number of ticks to run before exiting (0 = run forever)")
	tickRate := flag.Int("tick-rate", 20, "ticks per second of real time fed to the clock (each step passes 1/tick-rate s as real_dt; the loop itself is not paced)")
	flag.Parse()

	root := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(root)

	if !*headless {
		root.Warn("presentation layer is not part of this binary; running headless regardless")
	}

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.New(nil, nil)
	}

	genCfg := worldmap.DefaultGenConfig()
	genCfg.Width, genCfg.Height, genCfg.Seed = *width, *height, *seed
	grid := worldmap.Generate(genCfg)

	log := simlog.NewDefault(nil)
	driver := sim.New(cfg, grid, *seed, log)

	interval := 50 * time.Millisecond
	if *tickRate > 0 {
		interval = time.Second / time.Duration(*tickRate)
	}

	var count int64
	for {
		driver.Step(interval)
		count++
		if *ticks > 0 && count >= *ticks {
			break
		}
	}
}
