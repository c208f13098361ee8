package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/config"
	"github.com/tessella/subdiv/internal/report"
	"github.com/tessella/subdiv/internal/ui"
	"github.com/tessella/subdiv/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <mesh.obj>",
	Short: "Re-refine a mesh every time the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Int("level", 0, "maximum refinement level")
	watchCmd.Flags().Bool("adaptive", false, "isolate features adaptively instead of refining uniformly")
	watchCmd.Flags().String("report-dir", "", "directory to write the TOML run report into")

	_ = viper.BindPFlag("max_level", watchCmd.Flags().Lookup("level"))
	_ = viper.BindPFlag("adaptive", watchCmd.Flags().Lookup("adaptive"))
	_ = viper.BindPFlag("report_dir", watchCmd.Flags().Lookup("report-dir"))

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printer := ui.New()
	printer.Banner()

	refresh := func() {
		h, r, err := refineMesh(args[0], cfg, nil, printer)
		if err != nil {
			printer.Error(err.Error())
			return
		}
		printer.RefineDone(h.NumLevels(), h.TotalVertices(), h.TotalFaces())
		printer.Summary(r)
		if cfg.ReportDir != "" {
			if err := report.Save(cfg.ReportDir, r); err != nil {
				printer.Error(err.Error())
			}
		}
	}

	refresh()

	w, err := watch.NewWatcher(args[0])
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	printer.Watching(args[0])

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	for {
		select {
		case change := <-w.Changes:
			if change.Kind == watch.ChangeRemoved {
				printer.Info("mesh removed, waiting for it to reappear")
				continue
			}
			printer.Reloaded(args[0])
			refresh()
		case <-sigs:
			return nil
		}
	}
}
