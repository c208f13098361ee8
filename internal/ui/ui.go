// Package ui provides stderr-based output for the subdiv CLI.
package ui

import (
	"fmt"
	"os"

	"github.com/tessella/subdiv/internal/report"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, bold+cyan+"  ╔═══════════════════════════════════╗"+reset)
	fmt.Fprintln(os.Stderr, bold+cyan+"  ║"+reset+bold+"   SUBDIV  "+dim+"subdivision refiner    "+reset+bold+cyan+"║"+reset)
	fmt.Fprintln(os.Stderr, bold+cyan+"  ╚═══════════════════════════════════╝"+reset)
	fmt.Fprintln(os.Stderr)
}

func (p *Printer) MeshLoaded(name string, verts, faces int) {
	fmt.Fprintf(os.Stderr, cyan+"◆ mesh"+reset+" %s "+dim+"(%d vertices, %d faces)"+reset+"\n", name, verts, faces)
}

func (p *Printer) LevelRefined(depth, verts, faces int) {
	fmt.Fprintf(os.Stderr, "  "+dim+"level %d:"+reset+" %d vertices, %d faces\n", depth, verts, faces)
}

func (p *Printer) LevelSelected(depth, selected, total int) {
	fmt.Fprintf(os.Stderr, "  "+dim+"level %d:"+reset+" %d/%d faces isolated\n", depth, selected, total)
}

func (p *Printer) Converged(depth int) {
	fmt.Fprintf(os.Stderr, green+bold+"✓ converged"+reset+" at level %d — all features isolated\n", depth)
}

func (p *Printer) RefineDone(levels, totalVerts, totalFaces int) {
	fmt.Fprintf(os.Stderr, green+"◆ refine complete"+reset+" — %d level(s), %d vertices, %d faces total\n",
		levels, totalVerts, totalFaces)
}

func (p *Printer) Watching(path string) {
	fmt.Fprintf(os.Stderr, yellow+"▶ watching"+reset+" %s "+dim+"(ctrl-c to stop)"+reset+"\n", path)
}

func (p *Printer) Reloaded(path string) {
	fmt.Fprintf(os.Stderr, cyan+"↻ reloaded"+reset+" %s\n", path)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, dim+"%s"+reset+"\n", msg)
}

// LevelTable formats the per-level rows of a report as a plain text
// table. Exported without color so output stays greppable.
func LevelTable(r report.Report) string {
	out := fmt.Sprintf("%-6s %10s %10s %10s %10s\n", "level", "vertices", "edges", "faces", "selected")
	for _, lvl := range r.Levels {
		selected := "-"
		if lvl.Depth > 0 {
			selected = fmt.Sprintf("%d", lvl.SelectedFaces)
		}
		out += fmt.Sprintf("%-6d %10d %10d %10d %10s\n",
			lvl.Depth, lvl.Vertices, lvl.Edges, lvl.Faces, selected)
	}
	out += fmt.Sprintf("%-6s %10d %10d %10d\n", "total", r.TotalVertices, r.TotalEdges, r.TotalFaces)
	return out
}

// Summary prints the header and level table of a finished run.
func (p *Printer) Summary(r report.Report) {
	mode := "uniform"
	if r.Adaptive {
		mode = "adaptive"
	}
	fmt.Fprintf(os.Stderr, "\n"+bold+"%s"+reset+dim+" — %s %s, boundary %s, %d ptex face(s)"+reset+"\n",
		r.Mesh, mode, r.Scheme, r.Boundary, r.PtexFaces)
	fmt.Fprint(os.Stderr, LevelTable(r))
}
