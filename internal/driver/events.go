package driver

// Stage identifies one phase of the per-file pipeline, in execution order.
type Stage uint8

const (
	StageLex Stage = iota
	StageParse
	StageEmit
	StageWrite
)

// Status is the lifecycle of one file within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification sent to an observing UI.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// emitEvent sends a progress event without blocking the pipeline; a slow or
// absent consumer never stalls compilation.
func emitEvent(ch chan<- Event, file string, stage Stage, status Status, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- Event{File: file, Stage: stage, Status: status, Err: err}:
	default:
	}
}
