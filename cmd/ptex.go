package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tessella/subdiv/internal/config"
	"github.com/tessella/subdiv/internal/hierarchy"
	"github.com/tessella/subdiv/internal/objfile"
)

var ptexCmd = &cobra.Command{
	Use:   "ptex <mesh.obj>",
	Short: "Print the ptex face mapping of a mesh",
	Long: "Each quad base face maps to one ptex face; an n-gon maps to n sub-faces.\n" +
		"The command prints the first ptex index of every base face and the total count.",
	Args: cobra.ExactArgs(1),
	RunE: runPtex,
}

func init() {
	ptexCmd.Flags().String("scheme", "", "subdivision scheme (bilinear, catmull-clark, loop)")
	_ = viper.BindPFlag("scheme", ptexCmd.Flags().Lookup("scheme"))

	rootCmd.AddCommand(ptexCmd)
}

func runPtex(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	for f := 0; f < base.NumFaces(); f++ {
		nv := len(base.FaceVertices(f))
		fmt.Fprintf(out, "face %4d  ptex %4d  (%d-gon)\n", f, h.PtexIndex(f), nv)
	}
	fmt.Fprintf(out, "total: %d ptex face(s)\n", h.PtexFaceCount())
	return nil
}
