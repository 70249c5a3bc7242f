package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	"github.com/hmworsham/dynatopmodel/forcing"
	"github.com/hmworsham/dynatopmodel/model"
)

// barMonitor drives a terminal progress bar from the step snapshots.
type barMonitor struct {
	bar      *uiprogress.Bar
	timestep chan string
}

func newBarMonitor(nstep int) *barMonitor {
	uiprogress.Start()
	m := &barMonitor{timestep: make(chan string)}
	m.bar = uiprogress.AddBar(nstep).AppendCompleted().PrependElapsed()
	m.bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-m.timestep
	})
	return m
}

func (m *barMonitor) Step(s model.StepSnap) {
	m.timestep <- fmt.Sprint(s.T)
	m.bar.Incr()
}

func (m *barMonitor) close() {
	close(m.timestep)
	uiprogress.Stop()
}

func runCmd() *cobra.Command {
	var (
		ntt, outlet int
		q0, excap   float64
		outdir      string
	)
	cmd := &cobra.Command{
		Use:   "run <domain.gob> <forcing.gob>",
		Short: "Run a simulation and write hydrograph/monitor output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt := mmio.NewTimer()
			dom, err := model.LoadGobDomain(args[0])
			if err != nil {
				return fmt.Errorf("loading domain: %w", err)
			}
			frc, err := forcing.LoadGobForcing(args[1])
			if err != nil {
				return fmt.Errorf("loading forcing: %w", err)
			}
			dom.Frc = frc
			tt.Lap("domain load complete")

			cfg := model.RunConfig{Ntt: ntt, Q0: q0, ExCap: excap, Outlet: outlet}
			mon := newBarMonitor(frc.Nstep())
			res, err := dom.Run(cfg, mon)
			mon.close()
			if err != nil {
				return err
			}
			tt.Lap("simulation complete")

			res.Report()
			if outdir != "" {
				mmio.MakeDir(outdir)
				res.WriteHydrograph(outdir + "hydrograph.csv")
				res.WriteMonitors(outdir)
				tt.Lap("output written")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ntt, "ntt", 0, "inner sub-steps per time step")
	cmd.Flags().IntVar(&outlet, "outlet", -1, "outlet unit index (default: first channel unit)")
	cmd.Flags().Float64Var(&q0, "q0", 0., "initial specific discharge [m/h] (default: steady state)")
	cmd.Flags().Float64Var(&excap, "excap", 0., "surface-excess capacity bound [m] (default: unbounded)")
	cmd.Flags().StringVar(&outdir, "out", "", "output directory prefix")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain.gob> <forcing.gob>",
		Short: "Validate a domain and forcing record without running",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dom, err := model.LoadGobDomain(args[0])
			if err != nil {
				return fmt.Errorf("loading domain: %w", err)
			}
			frc, err := forcing.LoadGobForcing(args[1])
			if err != nil {
				return fmt.Errorf("loading forcing: %w", err)
			}
			dom.Frc = frc
			if err := dom.Check(); err != nil {
				return err
			}
			return frc.CheckAndPrint()
		},
	}
}
