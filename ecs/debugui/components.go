package debugui

import (
	"time"

	"github.com/plus3/flickball/ecs"
)

type EntityBrowser struct {
	cache            []EntityInfo
	archetypeCount   int
	entityCount      int
	selectedEntityId ecs.EntityId
	filterText       string
}

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

type PerformanceStats struct {
	history *FrameHistory
	timer   *FrameTimer
}

type FrameTimer struct {
	last time.Time
}
