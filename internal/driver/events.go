package driver

// Status describes where a file is in the checking pipeline.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusChecking indicates the file is being scanned.
	StatusChecking Status = "checking"
	// StatusDone indicates the file finished, findings or not.
	StatusDone Status = "done"
	// StatusError indicates the file could not be processed.
	StatusError Status = "error"
)

// Event is one progress notification from a directory run.
type Event struct {
	File   string
	Status Status
	// Findings is the number of diagnostics for the file; set with StatusDone.
	Findings int
}

// Sink receives progress events. Implementations must be safe for calls from
// multiple worker goroutines.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	s.Ch <- evt
}

func emit(s Sink, file string, status Status, findings int) {
	if s == nil {
		return
	}
	s.OnEvent(Event{File: file, Status: status, Findings: findings})
}
