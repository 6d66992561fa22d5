package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/socnet/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to json", "", []string{"json"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", " json , gml ", []string{"json", "gml"}},
		{"empty entries dropped", "json,,dot,", []string{"json", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid json", []string{"json"}, false},
		{"valid all", pipeline.Formats, false},
		{"invalid format", []string{"html"}, true},
		{"mixed valid invalid", []string{"svg", "html"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "karate.gml", "karate"},
		{"", "data/net.json", "data/net"},
		{"out/figure.svg", "karate.gml", "out/figure"},
		{"plain", "karate.gml", "plain"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.gml", pipeline.FormatGML},
		{"OUT.GML", pipeline.FormatGML},
		{"out.json", pipeline.FormatGraph},
		{"", pipeline.FormatGraph},
	}
	for _, tt := range tests {
		if got := graphFormat(tt.path); got != tt.want {
			t.Errorf("graphFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"json": []byte(`{"data":[]}`),
		"dot":  []byte("graph {}"),
	}

	t.Run("single format uses output verbatim", func(t *testing.T) {
		out := filepath.Join(dir, "single", "chart.any")
		paths, err := writeArtifacts(artifacts, []string{"json"}, "in.gml", out)
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != 1 || paths[0] != out {
			t.Fatalf("paths = %v, want [%s]", paths, out)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"data":[]}` {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("multiple formats share base name", func(t *testing.T) {
		out := filepath.Join(dir, "multi", "chart.json")
		paths, err := writeArtifacts(artifacts, []string{"json", "dot"}, "in.gml", out)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			filepath.Join(dir, "multi", "chart.figure.json"),
			filepath.Join(dir, "multi", "chart.dot"),
		}
		for i, p := range want {
			if paths[i] != p {
				t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
			}
			if _, err := os.Stat(p); err != nil {
				t.Errorf("missing %s: %v", p, err)
			}
		}
	})

	t.Run("no output derives from input", func(t *testing.T) {
		input := filepath.Join(dir, "derived", "karate.gml")
		paths, err := writeArtifacts(artifacts, []string{"dot"}, input, "")
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(dir, "derived", "karate.dot"); paths[0] != want {
			t.Errorf("path = %q, want %q", paths[0], want)
		}
	})
}

func TestDefaultConstants(t *testing.T) {
	if pipeline.DefaultSeed != 42 {
		t.Errorf("pipeline.DefaultSeed = %v, want 42", pipeline.DefaultSeed)
	}
	if pipeline.DefaultSteps != 20 {
		t.Errorf("pipeline.DefaultSteps = %v, want 20", pipeline.DefaultSteps)
	}
}
