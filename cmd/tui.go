package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/config"
	"github.com/tessella/subdiv/internal/hierarchy"
	"github.com/tessella/subdiv/internal/objfile"
	"github.com/tessella/subdiv/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <mesh.obj>",
	Short: "Browse a refined hierarchy interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().Int("level", 0, "maximum refinement level")
	tuiCmd.Flags().Bool("adaptive", false, "isolate features adaptively instead of refining uniformly")
	tuiCmd.Flags().String("scheme", "", "subdivision scheme (bilinear, catmull-clark, loop)")

	_ = viper.BindPFlag("max_level", tuiCmd.Flags().Lookup("level"))
	_ = viper.BindPFlag("adaptive", tuiCmd.Flags().Lookup("adaptive"))
	_ = viper.BindPFlag("scheme", tuiCmd.Flags().Lookup("scheme"))

	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	mesh, err := objfile.ParseFile(args[0])
	if err != nil {
		return err
	}

	s, opts := cfg.SchemeOptions()
	base, err := mesh.BuildLevel(s, opts)
	if err != nil {
		return err
	}

	h := hierarchy.New(s, opts)
	h.SetBaseLevel(base)

	if cfg.Adaptive {
		err = h.RefineAdaptive(cfg.MaxLevel, true)
	} else {
		err = h.RefineUniform(cfg.MaxLevel, true)
	}
	if err != nil {
		return err
	}

	return tui.Run(h, mesh.Name)
}
