package ecs

// UpdateFrame is the per-tick context handed to every system: the elapsed
// time since the previous tick, a shared command buffer for deferred
// structural changes, and direct storage access for reads.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
