package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	Number    uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
