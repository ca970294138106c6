package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Frames      uint64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type storageBinder interface {
	Init(storage *Storage)
}

type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   SystemStats
}

// Scheduler runs registered systems in registration order, once per frame.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	frames   uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register binds the system's Query and Singleton fields to the storage
// and appends it to the run order.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}
	entry.queries = s.bindFields(system)
	s.systems = append(s.systems, entry)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []queryExecutor {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if field.Kind() != reflect.Struct || !field.CanAddr() || !field.Addr().CanInterface() {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems with the given delta time, then
// flushes queued commands.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := &UpdateFrame{
		Number:    s.frames,
		DeltaTime: dt,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		for _, q := range entry.queries {
			q.Execute()
		}
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (r *registeredSystem) record(d time.Duration) {
	r.stats.ExecutionCount++
	r.stats.LastDuration = d
	r.stats.TotalDuration += d
	r.stats.MinDuration = min(r.stats.MinDuration, d)
	r.stats.MaxDuration = max(r.stats.MaxDuration, d)
}

// Run executes all systems at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		snapshot := entry.stats
		if snapshot.ExecutionCount > 0 {
			snapshot.AvgDuration = snapshot.TotalDuration / time.Duration(snapshot.ExecutionCount)
		} else {
			snapshot.MinDuration = 0
		}
		stats.Systems[i] = snapshot
	}

	return stats
}
