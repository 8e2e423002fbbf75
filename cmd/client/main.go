package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/zllovesuki/KeybowManager/client"
	"github.com/zllovesuki/KeybowManager/keymap"

	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	hold := flag.Duration("hold", client.DefaultHoldTimeout, "release a key after no repeat arrived for this long")
	flag.Parse()

	// the terminal belongs to the simulator
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(os.TempDir(), "keybow-simulator.log"),
		MaxSize:    1,
		MaxBackups: 1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	simulator := client.NewInterface(keymap.Default())
	simulator.HoldTimeout = *hold

	if err := simulator.Serve(ctx); err != nil {
		log.Printf("[simulator] %+v\n", err)
		os.Exit(1)
	}
}
