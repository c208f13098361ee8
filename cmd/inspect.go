package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/config"
	"github.com/tessella/subdiv/internal/objfile"
	"github.com/tessella/subdiv/internal/scheme"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <mesh.obj>",
	Short: "Print the base topology and feature census of a mesh",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("scheme", "", "subdivision scheme (bilinear, catmull-clark, loop)")
	inspectCmd.Flags().String("boundary", "", "boundary interpolation (none, edge-only, edge-and-corner)")

	_ = viper.BindPFlag("scheme", inspectCmd.Flags().Lookup("scheme"))
	_ = viper.BindPFlag("boundary", inspectCmd.Flags().Lookup("boundary"))

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mesh:       %s\n", mesh.Name)
	fmt.Fprintf(out, "scheme:     %s\n", s)
	fmt.Fprintf(out, "boundary:   %s\n", opts.Boundary)
	fmt.Fprintf(out, "vertices:   %d\n", base.NumVertices())
	fmt.Fprintf(out, "edges:      %d\n", base.NumEdges())
	fmt.Fprintf(out, "faces:      %d\n", base.NumFaces())
	if base.NumFVarChannels() > 0 {
		fmt.Fprintf(out, "fvar:       %d channel(s)\n", base.NumFVarChannels())
	}
	if len(mesh.Creases) > 0 || len(mesh.Corners) > 0 {
		fmt.Fprintf(out, "creases:    %d edge(s), %d corner(s)\n", len(mesh.Creases), len(mesh.Corners))
	}

	var smooth, dart, crease, corner, extraordinary, boundary, nonManifold int
	for v := 0; v < base.NumVertices(); v++ {
		tag := base.VertexTagOf(v)
		switch tag.Rule {
		case scheme.RuleSmooth:
			smooth++
		case scheme.RuleDart:
			dart++
		case scheme.RuleCrease:
			crease++
		case scheme.RuleCorner:
			corner++
		}
		if tag.Extraordinary {
			extraordinary++
		}
		if tag.Boundary {
			boundary++
		}
		if tag.NonManifold {
			nonManifold++
		}
	}
	fmt.Fprintf(out, "rules:      %d smooth, %d dart, %d crease, %d corner\n", smooth, dart, crease, corner)
	fmt.Fprintf(out, "features:   %d extraordinary, %d boundary\n", extraordinary, boundary)
	if nonManifold > 0 {
		fmt.Fprintf(out, "warning:    %d non-manifold vertex (or vertices)\n", nonManifold)
	}
	return nil
}
