package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const pathGraph = `graph [
  directed 0
  node [ id 1 label "a" ]
  node [ id 2 label "b" ]
  node [ id 3 label "c" ]
  node [ id 4 label "d" ]
  edge [ source 1 target 2 ]
  edge [ source 2 target 3 ]
  edge [ source 3 target 4 ]
]
`

func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(&buf, log.InfoLevel), &buf
}

func runCommand(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()

	want := []string{"layout", "render", "analyze", "animate", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	c, _ := testCLI(t)

	err := runCommand(t, c, "render", input, "-f", "json,graph", "--no-cache", "--layout", "circular")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "path.figure.json"))
	if err != nil {
		t.Fatal(err)
	}
	var fig map[string]any
	if err := json.Unmarshal(data, &fig); err != nil {
		t.Fatalf("figure is not JSON: %v", err)
	}
	if _, ok := fig["data"]; !ok {
		t.Error("figure has no data traces")
	}
	if _, err := os.Stat(filepath.Join(dir, "path.graph.json")); err != nil {
		t.Errorf("graph output missing: %v", err)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	c, _ := testCLI(t)

	if err := runCommand(t, c, "render", input, "-f", "html", "--no-cache"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLayoutThenKeep(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	positioned := filepath.Join(dir, "positioned.gml")
	c, _ := testCLI(t)

	if err := runCommand(t, c, "layout", input, "-o", positioned, "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(positioned)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "graphics") && !strings.Contains(string(data), " x ") {
		t.Errorf("positioned GML carries no coordinates:\n%s", data)
	}

	out := filepath.Join(dir, "kept.json")
	if err := runCommand(t, c, "render", positioned, "--layout", "keep", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render --layout keep: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("render output missing: %v", err)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	out := filepath.Join(dir, "annotated.json")
	c, _ := testCLI(t)

	err := runCommand(t, c, "analyze", input, "-o", out, "--source", "1", "--target", "4", "--no-cache")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, attr := range []string{"closeness", "betweenness", "shortest_neighbors"} {
		if !strings.Contains(string(data), attr) {
			t.Errorf("annotated graph lacks %q", attr)
		}
	}
}

func readPositions(t *testing.T, path string) map[string][2]float64 {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Nodes []struct {
			ID string  `json:"id"`
			X  float64 `json:"x"`
			Y  float64 `json:"y"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	pos := map[string][2]float64{}
	for _, n := range doc.Nodes {
		pos[n.ID] = [2]float64{n.X, n.Y}
	}
	return pos
}

func TestAnalyzeOutputPositions(t *testing.T) {
	dir := t.TempDir()
	c, _ := testCLI(t)

	t.Run("laid out when input has none", func(t *testing.T) {
		input := writeInput(t, dir, "path.gml", pathGraph)
		out := filepath.Join(dir, "laid-out.json")
		if err := runCommand(t, c, "analyze", input, "-o", out, "--no-cache"); err != nil {
			t.Fatal(err)
		}
		distinct := map[[2]float64]bool{}
		for _, p := range readPositions(t, out) {
			distinct[p] = true
		}
		if len(distinct) < 2 {
			t.Errorf("all nodes share one position: %v", distinct)
		}
	})

	t.Run("input coordinates adopted", func(t *testing.T) {
		input := writeInput(t, dir, "placed.gml", `graph [
  node [ id 1 x 0 y 5 ]
  node [ id 2 x 10 y 0 ]
  edge [ source 1 target 2 ]
]`)
		out := filepath.Join(dir, "placed.json")
		if err := runCommand(t, c, "analyze", input, "-o", out, "--no-cache"); err != nil {
			t.Fatal(err)
		}
		pos := readPositions(t, out)
		if pos["1"] != [2]float64{0, 1} || pos["2"] != [2]float64{1, 0} {
			t.Errorf("positions = %v, want 1:(0,1) 2:(1,0)", pos)
		}
	})
}

func TestAnalyzeCommandSourceWithoutTarget(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	c, _ := testCLI(t)

	if err := runCommand(t, c, "analyze", input, "--source", "1", "--no-cache"); err == nil {
		t.Fatal("expected error when --target is missing")
	}
}

func TestAnimateCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	c, _ := testCLI(t)

	if err := runCommand(t, c, "animate", input, "--steps", "3", "--layout", "random", "--no-cache"); err != nil {
		t.Fatalf("animate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "path.animation.json"))
	if err != nil {
		t.Fatal(err)
	}
	var fig struct {
		Frames []json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(data, &fig); err != nil {
		t.Fatal(err)
	}
	if len(fig.Frames) != 4 {
		t.Errorf("frames = %d, want 4", len(fig.Frames))
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	cacheRoot := filepath.Join(dir, "cache")
	cfg := writeInput(t, dir, "socnet.toml", `
[layout]
kind = "circular"

[render]
width = 640
height = 480

[cache]
backend = "file"
dir = "`+filepath.ToSlash(cacheRoot)+`"
`)
	c, _ := testCLI(t)

	if err := runCommand(t, c, "--config", cfg, "render", input); err != nil {
		t.Fatalf("render with config: %v", err)
	}
	if _, err := os.Stat(cacheRoot); err != nil {
		t.Errorf("file cache not created at configured dir: %v", err)
	}

	if err := runCommand(t, c, "--config", cfg, "cache", "path"); err != nil {
		t.Errorf("cache path: %v", err)
	}
	if err := runCommand(t, c, "--config", cfg, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "path.gml", pathGraph)
	c, _ := testCLI(t)

	err := runCommand(t, c, "--config", filepath.Join(dir, "absent.toml"), "render", input, "--no-cache")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}
