package render_test

import (
	"testing"

	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render"
	"github.com/stretchr/testify/assert"
)

func TestPointerSampler(t *testing.T) {
	type sample struct {
		down     bool
		x, y     float64
		captured bool
	}

	tests := []struct {
		name    string
		samples []sample
		want    []game.PointerEvent
	}{
		{
			name:    "idle",
			samples: []sample{{false, 1, 1, false}, {false, 2, 2, false}},
		},
		{
			name:    "press drag release",
			samples: []sample{{true, 10, 10, false}, {true, 10, 10, false}, {true, 12, 15, false}, {false, 14, 20, false}},
			want: []game.PointerEvent{
				{Kind: game.PointerDown, X: 10, Y: 10},
				{Kind: game.PointerMove, X: 12, Y: 15},
				{Kind: game.PointerUp, X: 14, Y: 20},
			},
		},
		{
			name:    "captured press is ignored",
			samples: []sample{{true, 10, 10, true}, {true, 12, 12, true}, {false, 12, 12, true}},
		},
		{
			name:    "capture after press keeps the drag",
			samples: []sample{{true, 0, 0, false}, {true, 5, 0, true}, {false, 5, 0, true}},
			want: []game.PointerEvent{
				{Kind: game.PointerDown, X: 0, Y: 0},
				{Kind: game.PointerMove, X: 5, Y: 0},
				{Kind: game.PointerUp, X: 5, Y: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sampler render.PointerSampler
			var got []game.PointerEvent
			for _, s := range tt.samples {
				if event, ok := sampler.Sample(s.down, s.x, s.y, s.captured); ok {
					got = append(got, event)
				}
			}
			assert.Equal(t, tt.want, got)
			assert.False(t, sampler.Pressed())
		})
	}
}
