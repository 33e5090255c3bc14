package pipeline

import "fmt"

// Stage names a unit of cached work.
type Stage string

const (
	StageBands        Stage = "bands"
	StageEventIDs     Stage = "event-ids"
	StageEventHTML    Stage = "event-html"
	StageEventDetails Stage = "event-details"
)

// Stages lists the stages in the order a run reports them. Event HTML is
// fetched inside the event details stage and has no progress of its own.
var Stages = []Stage{StageBands, StageEventIDs, StageEventDetails}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent reports one finished unit of work, or a run-level message
// when Key is empty.
type ProgressEvent struct {
	Stage Stage

	// Done and Total count units within Stage.
	Done  int
	Total int

	// Key is the cache key of the unit.
	Key string

	Message string
	Level   ProgressLevel
}

// StageError halts a run. It names the stage and cache key that failed;
// entries cached before the failure stay valid for the next run.
type StageError struct {
	Stage Stage
	Key   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed for %s: %v", e.Stage, e.Key, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
