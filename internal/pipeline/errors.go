package pipeline

import "fmt"

// Stage names reported in StageError.
const (
	StageLoad    = "load"
	StageSegment = "segment"
	StageRescale = "rescale"
	StageEncode  = "encode"
)

// StageError reports which pipeline stage failed and why.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
