package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/config"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/logger"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/processor"

	"github.com/charmbracelet/glamour"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to optional configuration file"`
	Dir        string  `short:"d" long:"dir"         env:"SCAN_DIR"    description:"Directory with DJI frames and SRT tracks" default:"."`
	SourceFPS  float64 `short:"s" long:"source-fps"  env:"SOURCE_FPS"  description:"Original video frame rate"                default:"29.97"`
	ExtractFPS float64 `short:"e" long:"extract-fps" env:"EXTRACT_FPS" description:"Frame extraction rate in frames/second"   default:"5"`
	LongHelp   bool    `short:"H" long:"long-help"   description:"Show the extended help"`
}

//go:embed longhelp.md
var longHelp string

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.LongHelp {
		printLongHelp()
		os.Exit(0)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	mergeFlags(&cfg, opts, func(name string) bool {
		opt := parser.FindOptionByLongName(name)
		return opt != nil && opt.IsSet() && !opt.IsSetDefault()
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid frame rate configuration")
	}

	log.Info().
		Str("dir", cfg.Dir).
		Float64("source_fps", cfg.SourceFPS).
		Float64("extract_fps", cfg.ExtractionFPS).
		Str("ratio", fmt.Sprintf("every %.1f frames", cfg.ExtractionRatio())).
		Msg("Starting geotagger")

	groups, err := processor.ScanDir(cfg.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to scan directory")
	}
	if len(groups) == 0 {
		log.Fatal().Str("dir", cfg.Dir).Msg("No matching DJI frame/SRT groups found")
	}

	summary := processor.Run(cfg, groups)

	log.Info().
		Int("tagged", summary.Tagged).
		Int("missed", summary.Missed).
		Int("failed", summary.Failed).
		Int("total", summary.Total).
		Int("groups", len(groups)).
		Msg("Geotagging complete")
}

// mergeFlags overlays flag values onto the config. wasSet reports whether
// the named flag was given explicitly (flag or env), so passing a value
// equal to the built-in default still overrides the config file.
func mergeFlags(cfg *config.Config, opts Options, wasSet func(name string) bool) {
	if wasSet("dir") {
		cfg.Dir = opts.Dir
	}
	if wasSet("source-fps") {
		cfg.SourceFPS = opts.SourceFPS
	}
	if wasSet("extract-fps") {
		cfg.ExtractionFPS = opts.ExtractFPS
	}
}

func printLongHelp() {
	out, err := glamour.Render(longHelp, "dark")
	if err != nil {
		fmt.Println(longHelp)
		return
	}
	fmt.Println(out)
}
