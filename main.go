package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ncruces/zenity"

	"glaze/app"
	"glaze/internal/buildinfo"
)

func main() {
	var headless app.HeadlessConfig
	cfgPath := flag.String("config", "", "TOML config file (optional).")
	fontPath := flag.String("font", "", "TTF font file (empty = bundled Go Regular).")
	matcapPath := flag.String("matcap", "", "Matcap image for the glazed material (empty = flat shading).")
	caption := flag.String("text", "", "Caption text.")
	textColor := flag.String("text-color", "", "Caption color, #RRGGBB.")
	donutColor := flag.String("donut-color", "", "Donut color, #RRGGBB.")
	donuts := flag.Int("donuts", 0, "Number of donuts.")
	seed := flag.Int64("seed", 0, "Spawn seed (0 = from the clock).")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	showVersion := flag.Bool("version", false, "Print version and exit.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run the simulation without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	if *showVersion {
		fmt.Printf("glaze %s\n", buildinfo.Short())
		return
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags beat the config file, but only the ones actually given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			cfg.Font = *fontPath
		case "matcap":
			cfg.Matcap = *matcapPath
		case "text":
			cfg.Text = *caption
		case "text-color":
			cfg.TextColor = *textColor
		case "donut-color":
			cfg.DonutColor = *donutColor
		case "donuts":
			cfg.Donuts = *donuts
		case "seed":
			cfg.Seed = *seed
		}
	})
	title := cfg.Title
	cfg.Title = fmt.Sprintf("%s (%s)", title, buildinfo.Short())

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("main: startup failed", "err", err)
		// A window user gets the error in their face once; headless
		// runs must never block on a dialog.
		if !headless.Enabled {
			if derr := zenity.Error(err.Error(), zenity.Title(title)); derr != nil {
				slog.Warn("main: error dialog unavailable", "err", derr)
			}
		}
		os.Exit(1)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := app.RunHeadless(ctx, a, headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := app.Run(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
