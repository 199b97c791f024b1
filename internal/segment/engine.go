package segment

// Decoding is the decoding strategy handed to the engine. Both values stay
// fixed for a run so repeated runs on identical input agree.
type Decoding struct {
	BeamSize int
	Patience float64
}

// DefaultDecoding is beam search with five beams and unit patience.
var DefaultDecoding = Decoding{BeamSize: 5, Patience: 1.0}

// Engine is a speech-recognition engine. An Engine is owned by a single
// segmentation call: Run is invoked once, then the segment accessors are read
// in index order.
type Engine interface {
	// Run performs inference over mono float32 samples.
	Run(samples []float32, language string, decoding Decoding) error
	// NumSegments returns the number of segments emitted by Run.
	NumSegments() int
	// SegmentBounds returns the start and end of segment i in engine time.
	SegmentBounds(i int) (start, end int64)
	// SegmentText returns the transcribed text of segment i.
	SegmentText(i int) string
	// Close releases the model.
	Close() error
}

// Raw is a recognized span in engine time units. Engine time carries no
// fixed relationship to seconds.
type Raw struct {
	Start int64
	End   int64
	Text  string
}
