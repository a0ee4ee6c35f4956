// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Applied-Materials-Technology/sloth/fem"
	"github.com/Applied-Materials-Technology/sloth/inp"
	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/Applied-Materials-Technology/sloth/out"
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	workers int
	dirout  string
	encoder string
	useDual bool
	alias   string
	nosave  bool
	fdstep  float64
	fdtol   float64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sloth",
	Short: "sloth -- viscoplastic return mapping and damage at integration points",
	Long: `sloth runs integration points along strain paths. Each increment computes the
elastic predictor, solves the viscoplastic return mapping with a scalar Newton-Raphson
method and evolves the damage index.

Available models: hsv, hyperbolic, perzyna, peric.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = config.Build()
		if err != nil {
			return chk.Err("failed to initialize logger: %v", err)
		}
		chk.Verbose = verbose
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file.sim>",
	Short: "Run all points of a simulation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSim,
}

var tableCmd = &cobra.Command{
	Use:   "table <file.sim>",
	Short: "Write the time series of every point of a finished simulation to text files",
	Args:  cobra.ExactArgs(1),
	RunE:  writeTables,
}

var checkCmd = &cobra.Command{
	Use:   "check <file.sim>",
	Short: "Compare analytical and numerical derivatives of the residual of every point",
	Args:  cobra.ExactArgs(1),
	RunE:  checkSim,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	rootCmd.PersistentFlags().StringVar(&alias, "alias", "", "word to add to results")
	runCmd.Flags().IntVarP(&workers, "workers", "w", 0, "max number of points running concurrently (0 => from .sim file)")
	runCmd.Flags().StringVarP(&dirout, "out", "o", "", "directory for output (empty => from .sim file)")
	runCmd.Flags().StringVar(&encoder, "encoder", "", "encoder: gob or json (empty => from .sim file)")
	runCmd.Flags().BoolVar(&useDual, "dual", false, "propagate derivatives with dual numbers")
	runCmd.Flags().BoolVar(&nosave, "nosave", false, "do not save results")
	checkCmd.Flags().Float64Var(&fdstep, "step", 1e-8, "finite difference step")
	checkCmd.Flags().Float64Var(&fdtol, "tol", 1e-5, "tolerance on the relative error")
	tableCmd.Flags().StringVarP(&dirout, "out", "o", "", "directory with results (empty => from .sim file)")
	rootCmd.AddCommand(runCmd, checkCmd, tableCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// readSim reads the simulation file and applies the command line settings
func readSim(fn string) (sim *inp.Simulation, err error) {
	sim, err = inp.ReadSim(fn, alias)
	if err != nil {
		return
	}
	if workers > 0 {
		sim.Solver.Workers = workers
	}
	if dirout != "" {
		sim.DirOut = dirout
	}
	if encoder == "gob" || encoder == "json" {
		sim.EncType = encoder
	}
	if useDual {
		sim.Data.Dual = true
	}
	return
}

func runSim(cmd *cobra.Command, args []string) (err error) {

	// message
	if verbose {
		io.PfWhite("\nsloth -- viscoplastic return mapping and damage\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// analysis data
	sim, err := readSim(args[0])
	if err != nil {
		return
	}
	analysis, err := fem.NewFEM(sim, !nosave, verbose, logger)
	if err != nil {
		return
	}

	// run simulation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return analysis.Run(ctx)
}

func checkSim(cmd *cobra.Command, args []string) (err error) {
	sim, err := readSim(args[0])
	if err != nil {
		return
	}
	dom, err := fem.NewDomain[float64](scalar.Real{}, sim, logger)
	if err != nil {
		return
	}
	reps, err := fem.CheckDerivatives(dom, fdstep, verbose)
	if err != nil {
		return
	}
	nfail := 0
	for _, r := range reps {
		if r.Err > fdtol {
			nfail++
			logger.Warn("derivative check failed", zap.Int("eid", r.Eid), zap.Int("ipid", r.Ipid),
				zap.String("mat", r.Mat), zap.Float64("dp", r.Dp), zap.Float64("ana", r.Ana),
				zap.Float64("num", r.Num), zap.Float64("err", r.Err))
		}
	}
	if nfail > 0 {
		return chk.Err("%d of %d derivative checks failed (models: %v)", nfail, len(reps), msolid.Names())
	}
	io.Pfgreen("%d derivative checks passed\n", len(reps))
	return
}

func writeTables(cmd *cobra.Command, args []string) (err error) {
	sim, err := readSim(args[0])
	if err != nil {
		return
	}
	err = out.StartSim(sim)
	if err != nil {
		return
	}
	for i, p := range out.Ipoints {
		alias := io.Sf("%s_%d_%d", sim.Key, p.Eid, p.Ipid)
		out.Define("!"+alias, out.I{i})
	}
	out.LoadResults()
	for alias := range out.Results {
		out.WriteTable(sim.DirOut, alias+".txt", alias, nil, verbose)
	}
	logger.Info("tables written", zap.String("dir", sim.DirOut), zap.Int("npts", len(out.Ipoints)))
	if verbose {
		io.Pf("%s", out.String())
	}
	return
}
