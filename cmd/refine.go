package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/config"
	"github.com/tessella/subdiv/internal/hierarchy"
	"github.com/tessella/subdiv/internal/objfile"
	"github.com/tessella/subdiv/internal/report"
	"github.com/tessella/subdiv/internal/telemetry"
	"github.com/tessella/subdiv/internal/ui"
)

var refineCmd = &cobra.Command{
	Use:   "refine <mesh.obj>",
	Short: "Refine a mesh into a subdivision hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefine,
}

func init() {
	refineCmd.Flags().Int("level", 0, "maximum refinement level")
	refineCmd.Flags().Bool("adaptive", false, "isolate features adaptively instead of refining uniformly")
	refineCmd.Flags().String("scheme", "", "subdivision scheme (bilinear, catmull-clark, loop)")
	refineCmd.Flags().String("boundary", "", "boundary interpolation (none, edge-only, edge-and-corner)")
	refineCmd.Flags().Bool("full-topology", false, "keep full vertex adjacency at the finest level")
	refineCmd.Flags().String("report-dir", "", "directory to write the TOML run report into")
	refineCmd.Flags().String("telemetry", "", "path for JSONL telemetry events")

	_ = viper.BindPFlag("max_level", refineCmd.Flags().Lookup("level"))
	_ = viper.BindPFlag("adaptive", refineCmd.Flags().Lookup("adaptive"))
	_ = viper.BindPFlag("scheme", refineCmd.Flags().Lookup("scheme"))
	_ = viper.BindPFlag("boundary", refineCmd.Flags().Lookup("boundary"))
	_ = viper.BindPFlag("full_topology", refineCmd.Flags().Lookup("full-topology"))
	_ = viper.BindPFlag("report_dir", refineCmd.Flags().Lookup("report-dir"))
	_ = viper.BindPFlag("telemetry", refineCmd.Flags().Lookup("telemetry"))

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printer := ui.New()

	var emitter *telemetry.Emitter
	if cfg.Telemetry != "" {
		emitter, err = telemetry.NewEmitter(cfg.Telemetry)
		if err != nil {
			return err
		}
		defer emitter.Close()
	}

	h, r, err := refineMesh(args[0], cfg, emitter, printer)
	if err != nil {
		return err
	}

	printer.RefineDone(h.NumLevels(), h.TotalVertices(), h.TotalFaces())
	printer.Summary(r)

	if cfg.ReportDir != "" {
		if err := report.Save(cfg.ReportDir, r); err != nil {
			return err
		}
		log.WithField("dir", cfg.ReportDir).Debug("report written")
	}
	return nil
}

// refineMesh loads an OBJ mesh and refines it per the configuration,
// emitting telemetry along the way. The report is built but not saved.
func refineMesh(path string, cfg config.Config, emitter *telemetry.Emitter, printer *ui.Printer) (*hierarchy.Hierarchy, report.Report, error) {
	started := time.Now()

	mesh, err := objfile.ParseFile(path)
	if err != nil {
		return nil, report.Report{}, err
	}
	printer.MeshLoaded(mesh.Name, mesh.NumVertices(), len(mesh.Faces))

	s, opts := cfg.SchemeOptions()
	base, err := mesh.BuildLevel(s, opts)
	if err != nil {
		return nil, report.Report{}, err
	}
	log.WithFields(logrus.Fields{
		"vertices": base.NumVertices(),
		"edges":    base.NumEdges(),
		"faces":    base.NumFaces(),
	}).Debug("base level built")

	h := hierarchy.New(s, opts)
	h.SetBaseLevel(base)

	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindRefineStart, Mesh: mesh.Name})

	if cfg.Adaptive {
		err = h.RefineAdaptive(cfg.MaxLevel, cfg.FullTopology)
	} else {
		err = h.RefineUniform(cfg.MaxLevel, cfg.FullTopology)
	}
	if err != nil {
		return nil, report.Report{}, fmt.Errorf("refining %s: %w", mesh.Name, err)
	}

	for i := 1; i <= h.MaxLevel(); i++ {
		lvl := h.Level(i)
		if cfg.Adaptive {
			selected := h.Refinement(i - 1).NumSelected()
			printer.LevelSelected(i-1, selected, h.Level(i-1).NumFaces())
			_ = emitter.Emit(telemetry.Event{
				Kind:  telemetry.KindLevelSelected,
				Mesh:  mesh.Name,
				Level: i - 1,
				Data:  telemetry.LevelStats{Faces: h.Level(i - 1).NumFaces(), SelectedFaces: selected},
			})
		}
		printer.LevelRefined(i, lvl.NumVertices(), lvl.NumFaces())
		_ = emitter.Emit(telemetry.Event{
			Kind:  telemetry.KindLevelRefined,
			Mesh:  mesh.Name,
			Level: i,
			Data: telemetry.LevelStats{
				Vertices: lvl.NumVertices(),
				Edges:    lvl.NumEdges(),
				Faces:    lvl.NumFaces(),
			},
		})
	}
	if cfg.Adaptive && h.MaxLevel() < cfg.MaxLevel {
		printer.Converged(h.MaxLevel())
		_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindConverged, Mesh: mesh.Name, Level: h.MaxLevel()})
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindRefineDone, Mesh: mesh.Name})

	return h, report.Build(mesh.Name, h, started, time.Now()), nil
}
