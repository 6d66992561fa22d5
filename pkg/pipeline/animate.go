package pipeline

import (
	"github.com/matzehuels/socnet/pkg/animation"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/render"
)

// Animate records the relaxation of the current layout of g as an animated
// figure with opts.Steps+1 frames. g ends at the final frame's positions.
func Animate(g *netgraph.Graph, opts Options) (render.Figure, error) {
	eng, err := NewLayoutEngine(opts)
	if err != nil {
		return render.Figure{}, err
	}
	seq := animation.NewSequencer(opts.Render, opts.renderOptions())
	if err := seq.Relax(g, eng, opts.Steps, opts.Weight); err != nil {
		return render.Figure{}, err
	}
	return seq.Figure()
}
