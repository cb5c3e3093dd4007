package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/http/usecases"
	"github.com/lintang-b-s/shiproute/pkg/logger"
	"github.com/lintang-b-s/shiproute/pkg/metrics"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wrtctl",
		Short: "Evaluate ship routes and the fuel model from the command line",
		Long: `wrtctl runs the route metrics and the fuel model without the HTTP server.

Examples:
  wrtctl fuel --wave-height 2 --wind-speed 12 --ship-type tanker
  wrtctl distance --route "-73.78,40.64;-9.13,38.77" --speed 7
  wrtctl params --route "-73.78,40.64;-40.5,41.2;-9.13,38.77" --speed 7 --seed 42`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newFuelCommand())
	rootCmd.AddCommand(newDistanceCommand())
	rootCmd.AddCommand(newParamsCommand())

	return rootCmd
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return logger.NewWithLevel("debug")
}

// parseRoute reads "lon,lat;lon,lat;..." into waypoints.
func parseRoute(s string) ([]geo.Waypoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, util.WrapErrorf(util.ErrEmptyRoute, util.ErrBadParamInput, "--route is required")
	}

	parts := strings.Split(s, ";")
	route := make([]geo.Waypoint, 0, len(parts))
	for i, part := range parts {
		coords := strings.Split(strings.TrimSpace(part), ",")
		if len(coords) != 2 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "waypoint %d: want lon,lat, got %q", i, part)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "waypoint %d longitude", i)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "waypoint %d latitude", i)
		}
		wp := geo.NewWaypoint(lon, lat)
		if err := wp.Validate(); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "waypoint %d", i)
		}
		route = append(route, wp)
	}
	return route, nil
}

func newFuelCommand() *cobra.Command {
	var (
		waveHeight float64
		windSpeed  float64
		shipType   string
	)

	cmd := &cobra.Command{
		Use:   "fuel",
		Short: "Fuel rate of the synthetic model for given wave height and wind speed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := util.ReadConfig(configPath)
			if err != nil {
				return err
			}
			if shipType != "" {
				cfg.Boat.ShipType = shipType
			}
			log, err := newLogger()
			if err != nil {
				return err
			}

			boat := ship.NewSyntheticFuelBoat(cfg.Boat, ship.NewSeededSampler(cfg.Boat.Seed), log)
			boat.PrintInit()
			rate := boat.CalculateFuelRate(units.Meter(waveHeight), units.MeterPerSecond(windSpeed))
			fmt.Fprintln(cmd.OutOrStdout(), rate)
			return nil
		},
	}

	cmd.Flags().Float64Var(&waveHeight, "wave-height", 0, "Significant wave height in m")
	cmd.Flags().Float64Var(&windSpeed, "wind-speed", 0, "Wind speed in m/s")
	cmd.Flags().StringVar(&shipType, "ship-type", "", "Ship type (container_ship, tanker, bulk_carrier, fishing_vessel, generic_cargo)")

	return cmd
}

func newDistanceCommand() *cobra.Command {
	var (
		routeFlag string
		speed     float64
	)

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Cumulative distance, elapsed time and course along a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := parseRoute(routeFlag)
			if err != nil {
				return err
			}
			dists, err := metrics.CumulativeDistance(route)
			if err != nil {
				return err
			}
			elapsed, err := metrics.ElapsedTime(metrics.ConstantSpeed(speed), route)
			if err != nil {
				return err
			}
			courses, err := metrics.Courses(route)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tLON\tLAT\tDISTANCE (km)\tELAPSED (h)\tCOURSE (deg)")
			for i, wp := range route {
				fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.3f\t%.3f\t%.2f\n", i, wp.GetLon(), wp.GetLat(),
					dists[i]/1000, elapsed[i]/3600, util.RadiansToDegree(courses[i]))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&routeFlag, "route", "", `Route as "lon,lat;lon,lat;..."`)
	cmd.Flags().Float64Var(&speed, "speed", 6, "Boat speed in m/s")

	return cmd
}

func newParamsCommand() *cobra.Command {
	var (
		routeFlag string
		speed     float64
		seed      uint64
		departure string
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Ship parameters and fuel along a route as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := parseRoute(routeFlag)
			if err != nil {
				return err
			}
			cfg, err := util.ReadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Boat.Seed = seed
			}
			var depart time.Time
			if departure != "" {
				depart, err = time.Parse(time.RFC3339, departure)
				if err != nil {
					return util.WrapErrorf(err, util.ErrBadParamInput, "--departure")
				}
			}
			log, err := newLogger()
			if err != nil {
				return err
			}

			boat, err := ship.NewBoat(cfg.Boat, nil, log)
			if err != nil {
				return err
			}
			svc := usecases.NewRouteService(log, boat, clockwork.NewRealClock(), 1)
			score, err := svc.ScoreRoute(cmd.Context(), route, metrics.ConstantSpeed(speed), depart)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				TotalFuel  float64          `json:"total_fuel"`
				FuelPerLeg []float64        `json:"fuel_per_leg"`
				Path       string           `json:"path"`
				ShipParams *ship.ShipParams `json:"ship_params"`
			}{score.TotalFuel, score.FuelPerLeg, score.Polyline, score.Params})
		},
	}

	cmd.Flags().StringVar(&routeFlag, "route", "", `Route as "lon,lat;lon,lat;..."`)
	cmd.Flags().Float64Var(&speed, "speed", 6, "Boat speed in m/s")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the synthetic weather sampler")
	cmd.Flags().StringVar(&departure, "departure", "", "Departure time (RFC3339), defaults to now")

	return cmd
}
