package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testCube = `v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v -0.5 0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
f 1 2 4 3
f 3 4 6 5
f 5 6 8 7
f 7 8 2 1
f 2 8 6 4
f 7 1 3 5
`

func writeTestMesh(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func captureCommand(run func(*cobra.Command, []string) error, args []string) (string, error) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := run(cmd, args)
	return buf.String(), err
}

func TestRunInspect(t *testing.T) {
	viper.Reset()
	path := writeTestMesh(t, testCube)

	out, err := captureCommand(runInspect, []string{path})
	if err != nil {
		t.Fatalf("runInspect: %v", err)
	}

	for _, want := range []string{
		"scheme:     catmull-clark",
		"vertices:   8",
		"edges:      12",
		"faces:      6",
		"8 extraordinary",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// A closed cube has no boundary.
	if !strings.Contains(out, "0 boundary") {
		t.Errorf("output missing boundary count:\n%s", out)
	}
}

func TestRunInspectMissingFile(t *testing.T) {
	viper.Reset()
	_, err := captureCommand(runInspect, []string{filepath.Join(t.TempDir(), "missing.obj")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunPtex(t *testing.T) {
	viper.Reset()
	// One quad and one pentagon: the quad takes one ptex face, the
	// pentagon five sub-faces.
	path := writeTestMesh(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 2 0 0
v 2.5 0.5 0
v 2 1 0
f 1 2 3 4
f 2 5 6 7 3
`)

	out, err := captureCommand(runPtex, []string{path})
	if err != nil {
		t.Fatalf("runPtex: %v", err)
	}
	if !strings.Contains(out, "face    0  ptex    0  (4-gon)") {
		t.Errorf("output missing quad mapping:\n%s", out)
	}
	if !strings.Contains(out, "face    1  ptex    1  (5-gon)") {
		t.Errorf("output missing pentagon mapping:\n%s", out)
	}
	if !strings.Contains(out, "total: 6 ptex face(s)") {
		t.Errorf("output missing total:\n%s", out)
	}
}
