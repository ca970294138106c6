package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	FlickAt  int
	FlickDX  float64
	FlickDY  float64

	// Results
	Frames        uint64
	SimulatedTime time.Duration
	Hits          int
	Resets        int
	HitEvents     []game.HitEvent
	FrameTime     Stats
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Flickball Simulation Report

## Script
- **Simulated Duration:** {{.Duration}}
- **Flick:** frame {{.FlickAt}}, delta ({{.FlickDX}}, {{.FlickDY}})

## Game
- **Frames:** {{.Frames}}
- **Simulated Time:** {{.SimulatedTime}}
- **Hits:** {{.Hits}}
- **Resets:** {{.Resets}}
{{range .HitEvents}}  - hit {{.Count}} at {{.At}}, depth {{printf "%.4f" .Depth}}
{{end}}
## Frame Time
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
