package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evoroute/config"
	"github.com/kilianp07/evoroute/core/population"
)

var (
	pointsCount int
	pointsOut   string
	pointsSeed  int64
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Generate a delivery points file",
	RunE:  runPoints,
}

func init() {
	pointsCmd.Flags().IntVar(&pointsCount, "count", 0, "number of points, defaults to the solver configuration")
	pointsCmd.Flags().StringVarP(&pointsOut, "out", "o", "points.json", "output file")
	pointsCmd.Flags().Int64Var(&pointsSeed, "seed", 0, "random seed, zero uses the current time")
	rootCmd.AddCommand(pointsCmd)
}

func runPoints(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	n := pointsCount
	if n == 0 {
		n = cfg.Solver.Points
	}
	seed := pointsSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	pts := population.GeneratePoints(rng, n, cfg.Solver.Width, cfg.Solver.Height, cfg.Solver.Padding)
	data, err := json.MarshalIndent(pts, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(pointsOut, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s (seed %d)\n", n, pointsOut, seed)
	return nil
}
