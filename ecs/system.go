package ecs

// System is a unit of per-frame behavior. Query and Singleton fields of a
// registered system are bound to the scheduler's storage; other fields
// keep their state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
