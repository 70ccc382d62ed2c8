package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectkit/objectkit/internal/cli/config"
)

const testHierarchy = `
classes:
  - name: Animal
    params:
      - name: p1
      - name: p2
      - name: p3
        default: vp3
  - name: Dog
    bases: [Animal]
    params:
      - name: c1
      - name: c2
        default: vc2
      - name: c3
        default: vc3
      - name: rest
        kind: var-positional
`

func writeHierarchy(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hierarchy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testHierarchy), 0o644))
	return path
}

func runInspect(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewInspectCommand(&config.Config{
		Output: config.OutputConfig{Format: "table", NoColor: true},
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspectClasses(t *testing.T) {
	path := writeHierarchy(t)

	out, err := runInspect(t, "classes", "-f", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Animal")
	assert.Contains(t, out, "Dog")
}

func TestInspectMRO(t *testing.T) {
	path := writeHierarchy(t)

	out, err := runInspect(t, "mro", "Dog", "-f", path, "--no-color", "--format", "json")
	require.NoError(t, err)

	var chain []string
	require.NoError(t, json.Unmarshal([]byte(out), &chain))
	assert.Equal(t, []string{"Dog", "Animal"}, chain)
}

func TestInspectParams(t *testing.T) {
	path := writeHierarchy(t)

	out, err := runInspect(t, "params", "Dog", "-f", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "p3")
	assert.Contains(t, out, "vp3")
	assert.NotContains(t, out, "rest")
}

func TestInspectResolve(t *testing.T) {
	path := writeHierarchy(t)

	out, err := runInspect(t,
		"resolve", "Dog", "A", "B", "C", "D", "E",
		"--kw", "p3=F",
		"-f", path, "--no-color", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{
		"c1": "A", "c2": "B", "c3": "C",
		"p1": "D", "p2": "E", "p3": "F",
	}, got)
}

func TestInspectResolve_BadKeywordFlag(t *testing.T) {
	path := writeHierarchy(t)

	_, err := runInspect(t, "resolve", "Dog", "-f", path, "--kw", "nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid keyword argument")
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := runInspect(t, "classes", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
