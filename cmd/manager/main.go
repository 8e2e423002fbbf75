package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zllovesuki/KeybowManager/config"
	"github.com/zllovesuki/KeybowManager/controller"
	"github.com/zllovesuki/KeybowManager/keymap"
	"github.com/zllovesuki/KeybowManager/supervisor"
	"github.com/zllovesuki/KeybowManager/system/device"
	"github.com/zllovesuki/KeybowManager/system/keyboard"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	suture "github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Compile time injected variables
var (
	Version = "v0.0.0-dev"
	IsDebug = "yes"
)

func main() {
	configPath := flag.String("config", "/etc/keybow-manager.yaml", "path to the yaml configuration")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	if IsDebug == "no" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.Log.File,
			MaxSize:    conf.Log.MaxSize,
			MaxBackups: conf.Log.MaxBackups,
			MaxAge:     conf.Log.MaxAge,
			Compress:   true,
		})
	}

	log.Printf("KeybowManager version: %s\n", Version)
	if conf.DryRun {
		log.Printf("[dry run] no hardware i/o will be performed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var dev keypad.Device = keypad.NopDevice{}
	if !conf.DryRun {
		usbDev, err := keypad.OpenUSB(ctx, keypad.USBConfig{
			VendorID:  conf.Keypad.VendorID,
			ProductID: conf.Keypad.ProductID,
			Path:      conf.Keypad.Path,
		})
		if err != nil {
			log.Fatalln(err)
		}
		if err := keypad.CheckFirmware(usbDev.Info().Release, conf.Keypad.MinFirmware); err != nil {
			log.Fatalln(err)
		}
		dev = usbDev
	}
	pad := keypad.New(dev)

	if !conf.DryRun && conf.Output.Function != "" {
		if err := device.ConfigureFunction(conf.Output.Function); err != nil {
			log.Fatalln(err)
		}
		log.Printf("[device] report descriptor written to %s\n", conf.Output.Function)
	}

	out, err := device.NewControl(device.Config{
		DryRun: conf.DryRun,
		Path:   conf.Output.Path,
	})
	if err != nil {
		log.Fatalln(err)
	}

	frameInterval, _ := conf.FrameInterval()
	fatalCh := make(chan error, 1)

	control, err := controller.New(controller.Config{
		Keypad:        pad,
		Keyboard:      keyboard.NewKeyboard(out),
		Consumer:      keyboard.NewConsumerControl(out),
		Keymap:        keymap.Default(),
		Step:          conf.Animation.Step,
		FrameInterval: frameInterval,
		ErrorCh:       fatalCh,
	})
	if err != nil {
		log.Fatalln(err)
	}

	evtHook := &supervisor.EventHook{}
	rootSupervisor := suture.New("Supervisor", suture.Spec{
		EventHook: evtHook.Event,
	})
	rootSupervisor.Add(control)

	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	supervisorErrCh := rootSupervisor.ServeBackground(ctx)

	exitCode := 0
	select {
	case sig := <-sigc:
		log.Printf("[supervisor] signal received: %+v\n", sig)
	case err := <-fatalCh:
		log.Printf("[supervisor] controller stopped: %+v\n", err)
		exitCode = 1
	case err := <-supervisorErrCh:
		log.Printf("[supervisor] rootSupervisor returns error: %+v\n", err)
		exitCode = 1
	}

	cancel()
	time.Sleep(time.Millisecond * 250) // grace period for the final reports
	pad.Close()
	out.Close()
	os.Exit(exitCode)
}
