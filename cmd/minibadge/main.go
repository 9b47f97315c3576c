package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/warthog618/go-gpiocdev"

	"github.com/escbadge/minibadge/internal/bus"
	"github.com/escbadge/minibadge/internal/config"
	"github.com/escbadge/minibadge/internal/driver"
	"github.com/escbadge/minibadge/internal/input"
	"github.com/escbadge/minibadge/internal/ir"
	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/orchestrator"
	"github.com/escbadge/minibadge/internal/render"
	"github.com/escbadge/minibadge/internal/scene"
	"github.com/escbadge/minibadge/internal/sensor"
	"github.com/escbadge/minibadge/internal/statusled"
	"github.com/escbadge/minibadge/internal/usbio"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		drv        = flag.String("driver", "", "driver: spi | ws | term | none (overrides config)")
		addr       = flag.String("addr", "", "preview listen address (ws driver, overrides config)")
		tickHz     = flag.Int("tick", 0, "render tick rate in Hz (overrides config)")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
		cfg = config.Default()
	}
	if *drv != "" {
		cfg.Driver = *drv
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *tickHz > 0 {
		cfg.TickHz = *tickHz
	}

	// ---- Render pipeline ----
	cat := scene.New()
	mtx := matrix.New()
	mgr := render.NewManager(mtx, time.Now().UnixNano())
	b := bus.New(log.Logger)

	var out driver.Driver
	switch cfg.Driver {
	case "spi":
		out, err = driver.NewNRZ(cfg.SPI.Port)
		if err != nil {
			log.Fatal().Err(err).Str("port", cfg.SPI.Port).Msg("spi driver init failed")
		}
	case "ws":
		out = driver.NewWSPreview(cfg.ListenAddr, log.Logger)
	case "term":
		out = driver.NewTerm(os.Stdout)
	case "none":
		out = &driver.Capture{}
	default:
		log.Fatal().Str("driver", cfg.Driver).Msg("unknown driver")
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- IO tasks ----
	// Each peripheral is optional: a failed line request logs a warning
	// and the badge runs without that input.
	var wg sync.WaitGroup
	spawn := func(name string, run func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Str("task", name).Msg("task started")
			run(ctx)
		}()
	}

	if events, closeLine, err := input.Line(cfg.GPIO.Chip, cfg.GPIO.Button); err != nil {
		log.Warn().Err(err).Int("offset", cfg.GPIO.Button).Msg("button unavailable")
	} else {
		defer closeLine()
		btn := &input.Button{Events: events, Bus: b, Log: log.Logger}
		spawn("button", btn.Run)
	}

	if events, closeLine, err := ir.Line(cfg.GPIO.Chip, cfg.GPIO.IRRx); err != nil {
		log.Warn().Err(err).Int("offset", cfg.GPIO.IRRx).Msg("ir receiver unavailable")
	} else {
		defer closeLine()
		rx := &ir.Receiver{Events: events, Bus: b, Log: log.Logger}
		spawn("ir-rx", rx.Run)
	}

	if line, err := gpiocdev.RequestLine(cfg.GPIO.Chip, cfg.GPIO.IRTx, gpiocdev.AsOutput(0)); err != nil {
		log.Warn().Err(err).Int("offset", cfg.GPIO.IRTx).Msg("ir blaster unavailable")
	} else {
		defer line.Close()
		tx := &ir.Blaster{Sub: b.Subscribe("ir-tx"), Bus: b, Line: line, Log: log.Logger}
		spawn("ir-tx", tx.Run)
	}

	if line, err := gpiocdev.RequestLine(cfg.GPIO.Chip, cfg.GPIO.StatusLed, gpiocdev.AsOutput(0)); err != nil {
		log.Warn().Err(err).Int("offset", cfg.GPIO.StatusLed).Msg("status led unavailable")
	} else {
		defer line.Close()
		st := &statusled.Status{Sub: b.Subscribe("status"), LED: line, Log: log.Logger}
		spawn("status", st.Run)
	}

	th := &sensor.Thermal{
		Path:   cfg.Thermal.Path,
		Period: time.Duration(cfg.Thermal.PeriodMs) * time.Millisecond,
		Bus:    b,
		Log:    log.Logger,
	}
	spawn("thermal", th.Run)

	// Serial readers block in Read and cannot see cancellation; their
	// files are closed on shutdown to unblock them.
	var serials []*os.File
	if cfg.Control.Device != "" {
		if f, err := os.OpenFile(cfg.Control.Device, os.O_RDWR, 0); err != nil {
			log.Warn().Err(err).Str("device", cfg.Control.Device).Msg("control device unavailable")
		} else {
			serials = append(serials, f)
			ctl := &usbio.Control{R: f, Bus: b, Log: log.Logger}
			spawn("control", ctl.Run)
		}
	}

	if cfg.Midi.Device != "" {
		if f, err := os.Open(cfg.Midi.Device); err != nil {
			log.Warn().Err(err).Str("device", cfg.Midi.Device).Msg("midi device unavailable")
		} else {
			serials = append(serials, f)
			md := &usbio.Midi{R: f, Bus: b, Log: log.Logger}
			spawn("midi", md.Run)
		}
	}

	hid := &usbio.Hid{
		Sub:    b.Subscribe("hid"),
		Bus:    b,
		Sender: usbio.LogKeySender{Log: log.Logger},
		Log:    log.Logger,
	}
	spawn("hid", hid.Run)

	// ---- Render loop ----
	log.Info().
		Str("driver", cfg.Driver).
		Int("tick_hz", cfg.TickHz).
		Int("scenes", len(cat.Scenes)).
		Msg("minibadge up")

	orc := orchestrator.New(b, mgr, cat, out, log.Logger)
	orc.Run(ctx, cfg.TickHz)

	stop()
	for _, f := range serials {
		_ = f.Close()
	}
	wg.Wait()
	log.Info().Msg("minibadge down")
}
