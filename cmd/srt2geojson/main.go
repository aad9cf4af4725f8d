// Command srt2geojson converts a DJI SRT telemetry track into a GeoJSON
// FeatureCollection for map inspection of the flight path.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/geo"
	"github.com/donwrightdesigns/dji-srt-geotag/internal/telemetry"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input  string `short:"i" long:"in" description:"Input SRT telemetry file" required:"true"`
	Output string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	prefix := strings.TrimSuffix(filepath.Base(opts.Input), filepath.Ext(opts.Input))
	track, err := telemetry.Load(opts.Input, prefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fc := collect(track)

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := write(out, opts.Format, fc); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// collect turns every parsable telemetry record into a Point feature.
// Records without GPS data are skipped, matching the tagger's behavior.
func collect(track *telemetry.Track) geo.GeoJSONFeatureCollection {
	fc := geo.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: []geo.GeoJSONFeature{},
	}

	for _, iv := range track.Intervals {
		sample, ok := telemetry.ParseSample(iv.Text)
		if !ok {
			continue
		}

		props := map[string]interface{}{
			"prefix":   track.Prefix,
			"start_ms": iv.Start.Milliseconds(),
			"end_ms":   iv.End.Milliseconds(),
			"abs_alt":  sample.AbsAlt,
		}
		if sample.RelAlt != nil {
			props["rel_alt"] = *sample.RelAlt
		}

		fc.Features = append(fc.Features, geo.NewPointFeature(sample.Lon, sample.Lat, props))
	}

	return fc
}

func write(out io.Writer, format string, fc geo.GeoJSONFeatureCollection) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(fc); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
