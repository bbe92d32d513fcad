package main

import (
	"context"
	"flag"
	"os"

	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to NES ROM to run.")
	trace    = flag.Bool("trace", false, "Log a nestest-style disassembly trace line for every instruction executed.")
	scale    = flag.Int("scale", 2, "Integer window scale factor, relative to the NES's native 256x240 resolution.")
	headless = flag.Bool("headless", false, "Run the emulation loop without opening an ebiten window; useful for trace/testing.")
	monitor  = flag.Bool("monitor", false, "Drop into an interactive command-line monitor instead of running the ebiten window.")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		glog.Fatalf("Invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		glog.Fatalf("Couldn't Get() mapper: %v", err)
	}

	gintendo := console.New(m)
	gintendo.SetScale(*scale)
	gintendo.SetTrace(*trace)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *monitor {
		console.NewMonitor(gintendo).Run(ctx)
		os.Exit(0)
	}

	if *headless {
		gintendo.Run(ctx)
		os.Exit(0)
	}

	go func(ctx context.Context) {
		gintendo.Run(ctx)
	}(ctx)

	if err := ebiten.RunGame(gintendo); err != nil {
		glog.Fatal(err)
	}

	os.Exit(0)
}
