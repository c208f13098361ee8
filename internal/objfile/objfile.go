// Package objfile reads Wavefront OBJ meshes into base topology levels.
// Alongside the standard v/vt/f records it understands crease tag lines
// of the form "t crease 2/1/0 v0 v1 sharpness" and "t corner 1/1/0 v
// sharpness" for marking semi-sharp features.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tessella/subdiv/internal/scheme"
	"github.com/tessella/subdiv/internal/topology"
)

// Crease is a sharpness assignment on the edge joining two vertices.
type Crease struct {
	V0, V1    int
	Sharpness float64
}

// Corner is a sharpness assignment on a single vertex.
type Corner struct {
	Vertex    int
	Sharpness float64
}

// Mesh is the raw content of an OBJ file before topology construction.
// Positions are kept for reporting; refinement itself only needs the
// connectivity.
type Mesh struct {
	Name         string
	Positions    [][3]float64
	NumTexCoords int
	Faces        [][]int
	Creases      []Crease
	Corners      []Corner
}

// ParseFile reads an OBJ mesh from disk.
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objfile: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads an OBJ mesh from r. The name is used in error messages
// and carried into the mesh.
func Parse(r io.Reader, name string) (*Mesh, error) {
	mesh := &Mesh{Name: name}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = mesh.parsePosition(fields[1:])
		case "vt":
			mesh.NumTexCoords++
		case "f":
			err = mesh.parseFace(fields[1:])
		case "t":
			err = mesh.parseTag(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("objfile: %s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objfile: reading %s: %w", name, err)
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("objfile: %s has no faces", name)
	}
	return mesh, nil
}

func (m *Mesh) parsePosition(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("vertex needs 3 coordinates, got %d", len(args))
	}
	var p [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", args[i], err)
		}
		p[i] = v
	}
	m.Positions = append(m.Positions, p)
	return nil
}

func (m *Mesh) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	face := make([]int, len(args))
	for i, s := range args {
		// Only the position index matters; texcoord and normal
		// references after the slashes are dropped.
		if slash := strings.IndexByte(s, '/'); slash >= 0 {
			s = s[:slash]
		}
		idx, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("bad face index %q: %w", s, err)
		}
		switch {
		case idx > 0:
			face[i] = idx - 1
		case idx < 0:
			// Negative indices count back from the most recent vertex.
			face[i] = len(m.Positions) + idx
		default:
			return fmt.Errorf("face index must not be zero")
		}
		if face[i] < 0 || face[i] >= len(m.Positions) {
			return fmt.Errorf("face index %d out of range [1,%d]", idx, len(m.Positions))
		}
	}
	m.Faces = append(m.Faces, face)
	return nil
}

// parseTag handles "t crease ..." and "t corner ..." lines. The second
// field is an argument-count triple which is validated but otherwise
// unused.
func (m *Mesh) parseTag(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("tag line needs a name and arguments")
	}
	switch args[0] {
	case "crease":
		if len(args) < 5 {
			return fmt.Errorf("crease tag needs two vertices and a sharpness")
		}
		v0, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad crease vertex %q: %w", args[2], err)
		}
		v1, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("bad crease vertex %q: %w", args[3], err)
		}
		sh, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("bad crease sharpness %q: %w", args[4], err)
		}
		m.Creases = append(m.Creases, Crease{V0: v0, V1: v1, Sharpness: sh})
	case "corner":
		if len(args) < 4 {
			return fmt.Errorf("corner tag needs a vertex and a sharpness")
		}
		v, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad corner vertex %q: %w", args[2], err)
		}
		sh, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("bad corner sharpness %q: %w", args[3], err)
		}
		m.Corners = append(m.Corners, Corner{Vertex: v, Sharpness: sh})
	}
	// Unrecognized tags (interpolateboundary, faceedit, ...) are skipped.
	return nil
}

// NumVertices returns the number of position records read.
func (m *Mesh) NumVertices() int { return len(m.Positions) }

// BuildLevel assembles the mesh into a base topology level under the
// given scheme and options. Texture coordinates, when present, become a
// face-varying channel.
func (m *Mesh) BuildLevel(s scheme.Scheme, opts scheme.Options) (*topology.Level, error) {
	b := topology.NewBuilder(len(m.Positions))
	for _, face := range m.Faces {
		verts := make([]topology.Index, len(face))
		for i, v := range face {
			verts[i] = topology.Index(v)
		}
		if err := b.AddFace(verts...); err != nil {
			return nil, fmt.Errorf("objfile: %s: %w", m.Name, err)
		}
	}
	for _, c := range m.Creases {
		if err := b.SetEdgeSharpness(c.V0, c.V1, c.Sharpness); err != nil {
			return nil, fmt.Errorf("objfile: %s: %w", m.Name, err)
		}
	}
	for _, c := range m.Corners {
		if err := b.SetVertexSharpness(c.Vertex, c.Sharpness); err != nil {
			return nil, fmt.Errorf("objfile: %s: %w", m.Name, err)
		}
	}
	if m.NumTexCoords > 0 {
		b.AddFVarChannel(m.NumTexCoords)
	}
	return b.Finalize(s, opts)
}
