package netgraph

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"#ffffff", White, false},
		{"#000", Black, false},
		{"#ff8000", Color{255, 128, 0}, false},
		{"rgb(10, 20, 30)", Color{10, 20, 30}, false},
		{"  rgb(1,2,3)  ", Color{1, 2, 3}, false},

		{"rgb(1, 2, 300)", Color{}, true},
		{"rgb(1, 2, 3", Color{}, true},
		{"red", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color{255, 128, 0}
	if got := c.String(); got != "rgb(255, 128, 0)" {
		t.Errorf("String() = %q", got)
	}
	if got := c.Hex(); got != "#ff8000" {
		t.Errorf("Hex() = %q", got)
	}

	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != c {
		t.Errorf("text round trip = %v, want %v", back, c)
	}
}

func TestLuminance(t *testing.T) {
	if got := White.Luminance(); got < 254.9 || got > 255.1 {
		t.Errorf("White luminance = %v, want 255", got)
	}
	if got := Black.Luminance(); got != 0 {
		t.Errorf("Black luminance = %v, want 0", got)
	}
	// Pure blue is dark, pure green is bright.
	if (Color{0, 0, 255}).Luminance() >= 128 {
		t.Error("blue should be darker than the midpoint")
	}
	if (Color{0, 255, 0}).Luminance() < 128 {
		t.Error("green should be brighter than the midpoint")
	}
}
