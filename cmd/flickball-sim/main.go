// Command flickball-sim plays one scripted flick without a window and
// prints a markdown report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/flickball/config"
	"github.com/plus3/flickball/game"
)

type script struct {
	duration time.Duration
	flickAt  int
	dx, dy   float64
}

// simulate runs the session frame by frame on a manual clock so the hit
// debounce follows simulated time rather than wall time.
func simulate(params game.Params, s script) *Report {
	clock := &game.ManualClock{}
	session := game.NewSession(params, game.WithClock(clock))
	defer session.Close()

	report := &Report{
		Duration: s.duration,
		FlickAt:  s.flickAt,
		FlickDX:  s.dx,
		FlickDY:  s.dy,
	}
	session.OnHit(func(hit game.HitEvent) {
		report.HitEvents = append(report.HitEvents, hit)
	})

	dt := time.Duration(session.World().Params.Dt * float64(time.Second))
	frames := int(s.duration / dt)

	runtime.ReadMemStats(&report.MemStatsStart)
	for frame := 0; frame < frames; frame++ {
		if frame == s.flickAt {
			session.Input.PointerDown(0, 0)
			session.Input.PointerUp(s.dx, s.dy)
		}

		start := time.Now()
		session.Frame()
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(start))
		clock.Advance(dt)
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := session.Scheduler.GetStats()
	report.Frames = stats.Frames
	report.Systems = stats.Systems
	report.SimulatedTime = clock.Now()
	report.Hits = session.HitCount()
	report.Resets = session.Resets()
	report.FrameTime.Finalize()
	return report
}

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)

	var s script
	flag.DurationVar(&s.duration, "duration", 5*time.Second, "simulated time to run for")
	flag.IntVar(&s.flickAt, "flick-at", 30, "frame at which the ball is flicked")
	flag.Float64Var(&s.dx, "flick-dx", 60, "horizontal pointer delta of the flick")
	flag.Float64Var(&s.dy, "flick-dy", 40, "vertical pointer delta of the flick")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Simulating %s...", s.duration)
	report := simulate(cfg.Params(), s)
	log.Println("Simulation finished.")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
