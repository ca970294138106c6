package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flickball/ecs"
)

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Add records one frame time.
func (h *FrameHistory) Add(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frame times in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// FPS derived from Average.
func (h *FrameHistory) FPS() float32 {
	avg := h.Average()
	if avg == 0 {
		return 0
	}
	return 1000 / avg
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Tick returns the time since the previous Tick.
func (ft *FrameTimer) Tick() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.last)
	ft.last = now
	return delta
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		history: NewFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
}

// Render draws frame timing, storage counts and per-system durations.
func (ps *PerformanceStats) Render(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ps.history.Add(ps.timer.Tick())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)
	if !imgui.BeginV("Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("%.0f FPS (%.2f ms)", ps.history.FPS(), ps.history.Average()))
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	schedulerStats := scheduler.GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d", schedulerStats.Frames))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range schedulerStats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
