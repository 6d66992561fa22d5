// Package animation assembles rendered frames into an animated chart.
//
// A [Sequencer] captures the state of a graph once per step, typically after
// each layout update or each change of node colors. [Figure] then wraps the
// frames with play and pause buttons and a slider. Playback timing belongs to
// whatever displays the figure; this package only produces data.
//
//	seq := animation.NewSequencer(cfg, render.Options{})
//	if err := seq.Relax(g, eng, 30, ""); err != nil {
//	    return err
//	}
//	fig, err := seq.Figure()
package animation

import (
	"errors"
	"fmt"

	"github.com/matzehuels/socnet/pkg/layout"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/render"
)

// ErrNoFrames is returned when building a figure from zero frames.
var ErrNoFrames = errors.New("animation has no frames")

// Sequencer accumulates frames in capture order.
type Sequencer struct {
	cfg    render.Config
	opts   render.Options
	frames []render.Frame
}

// NewSequencer creates an empty sequencer that renders with cfg and opts.
func NewSequencer(cfg render.Config, opts render.Options) *Sequencer {
	return &Sequencer{cfg: cfg, opts: opts}
}

// Capture renders the current state of g as the next frame and returns its
// index.
func (s *Sequencer) Capture(g *netgraph.Graph) int {
	f := render.BuildFrame(g, s.cfg, s.opts)
	f.Name = len(s.frames)
	s.frames = append(s.frames, f)
	return f.Name
}

// Relax captures the current layout, then runs steps single-iteration layout
// updates, capturing after each one.
func (s *Sequencer) Relax(g *netgraph.Graph, eng *layout.Engine, steps int, weight string) error {
	s.Capture(g)
	for i := range steps {
		if err := eng.Update(g, weight, 1); err != nil {
			return fmt.Errorf("relax step %d: %w", i, err)
		}
		s.Capture(g)
	}
	return nil
}

// Frames returns the captured frames.
func (s *Sequencer) Frames() []render.Frame { return s.frames }

// Len returns the number of captured frames.
func (s *Sequencer) Len() int { return len(s.frames) }

// Figure builds the animated figure from the captured frames.
func (s *Sequencer) Figure() (render.Figure, error) {
	return Figure(s.frames, s.cfg)
}

// FromSnapshots renders one frame per graph, in order.
func FromSnapshots(graphs []*netgraph.Graph, cfg render.Config, opts render.Options) []render.Frame {
	s := NewSequencer(cfg, opts)
	for _, g := range graphs {
		s.Capture(g)
	}
	return s.frames
}

type animateArgs struct {
	Frame       frameArgs `json:"frame"`
	FromCurrent bool      `json:"fromcurrent,omitempty"`
	Mode        string    `json:"mode,omitempty"`
}

type frameArgs struct {
	Redraw bool `json:"redraw"`
}

// Figure wraps frames into a figure whose initial data is the first frame.
// Frames are renumbered 0..n-1. The chart is enlarged to make room for the
// controls.
func Figure(frames []render.Frame, cfg render.Config) (render.Figure, error) {
	if len(frames) == 0 {
		return render.Figure{}, ErrNoFrames
	}

	numbered := make([]render.Frame, len(frames))
	steps := make([]render.Button, len(frames))
	for i, f := range frames {
		f.Name = i
		numbered[i] = f
		steps[i] = render.Button{
			Args:   []any{[]int{i}, animateArgs{Mode: "immediate"}},
			Label:  "",
			Method: "animate",
		}
	}

	lay := render.ChartLayout(1.05*cfg.Width+72, cfg.Height+76)
	lay.UpdateMenus = []render.UpdateMenu{{
		Buttons: []render.Button{
			{
				Args:   []any{nil, animateArgs{FromCurrent: true}},
				Label:  "Play",
				Method: "animate",
			},
			{
				Args:   []any{[]any{nil}, animateArgs{Mode: "immediate"}},
				Label:  "Pause",
				Method: "animate",
			},
		},
		ShowActive: true,
		Type:       "buttons",
	}}
	lay.Sliders = []render.Slider{{
		CurrentValue: render.CurrentValue{Visible: false},
		Steps:        steps,
	}}

	return render.Figure{
		Data:   numbered[0].Data,
		Layout: lay,
		Frames: numbered,
	}, nil
}
