// Command ratio-rage runs the game in a terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/ericre997/RatioRage/config"
	"github.com/ericre997/RatioRage/core"
	"github.com/ericre997/RatioRage/logging"
)

var (
	configFlag  = flag.String("config", "", "Path to a TOML config file")
	seedFlag    = flag.Uint64("seed", 0, "Level seed, 0 picks one from the clock")
	noAudioFlag = flag.Bool("no-audio", false, "Disable sound effects")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ratio-rage: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if *noAudioFlag {
		cfg.Audio.Enabled = false
	}

	log, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Panic Recovery: restore the terminal before printing the trace
	core.SetCrashScreen(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := newGame(ctx, cfg, screen, log)
	if err != nil {
		log.Error().Err(err).Msg("Level setup failed")
		return err
	}
	defer g.close()

	return g.run(ctx)
}
