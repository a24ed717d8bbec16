package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/chronos-api/internal/astro"
	"github.com/zapponejosh/chronos-api/internal/chronos"
	"github.com/zapponejosh/chronos-api/internal/ephemeris"
)

type computeOptions struct {
	date      string
	clock     string
	format    string
	latitude  float64
	longitude float64
}

func newComputeCmd(newLogger func() *slog.Logger) *cobra.Command {
	opts := computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the full result bundle for a birth moment",
		Example: `  chronos compute --date 1990-01-01 --time 08:30
  chronos compute --date 1990-01-01 --format yaml --lat -7.7956 --lon 110.3695`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, opts, newLogger())
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.clock, "time", "12:00", "birth time (HH:MM)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().Float64Var(&opts.latitude, "lat", ephemeris.Jakarta.Latitude, "observer latitude in degrees")
	cmd.Flags().Float64Var(&opts.longitude, "lon", ephemeris.Jakarta.Longitude, "observer longitude in degrees")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runCompute(cmd *cobra.Command, opts computeOptions, log *slog.Logger) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q: use json or yaml", opts.format)
	}
	if opts.latitude < -90 || opts.latitude > 90 || opts.longitude < -180 || opts.longitude > 180 {
		return fmt.Errorf("observer %g,%g is outside the valid coordinate range", opts.latitude, opts.longitude)
	}

	moment, err := chronos.ParseBirthMoment(opts.date, opts.clock)
	if err != nil {
		return fmt.Errorf("parse birth moment: %w", err)
	}

	loc := ephemeris.Location{Latitude: opts.latitude, Longitude: opts.longitude}
	engine := chronos.NewEngine(astro.NewCalculator(ephemeris.OrbitalElements{}, loc), log)
	bundle := engine.Compute(cmd.Context(), moment)

	out := cmd.OutOrStdout()
	switch opts.format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(bundle); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
}
