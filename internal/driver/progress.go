package driver

import "time"

// Stage describes a phase of a directory run.
type Stage string

const (
	// StageLoad is reading and normalizing the file.
	StageLoad Stage = "load"
	// StageLex is running the grammar over the file.
	StageLex Stage = "lex"
	// StageDiagnose is turning invalid tokens into diagnostics.
	StageDiagnose Stage = "diagnose"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates a worker is on the file.
	StatusWorking Status = "working"
	// StatusDone indicates the file has no errors.
	StatusDone Status = "done"
	// StatusError indicates the file failed to load or has lexical errors.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
// Tokens and Invalid are set once the file reaches StageDiagnose.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
	Tokens  int
	Invalid int
}

// ProgressSink consumes progress events. TokenizeDir calls it from several
// workers at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (o Options) emit(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}
