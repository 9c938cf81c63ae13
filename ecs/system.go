package ecs

// System is one unit of per-tick behavior. Implementations typically carry
// Query and Singleton value fields, which the Scheduler initializes at
// registration and refreshes before each Execute; any other fields persist
// between frames as ordinary state.
type System interface {
	Execute(frame *UpdateFrame)
}
