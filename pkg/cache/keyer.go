package cache

// CheckpointKeyOpts are the run options that change a checkpoint.
type CheckpointKeyOpts struct {
	InitialHash  string `json:"initial"`
	MaxNoImprove int    `json:"max_no_improve"`
	Finalize     bool   `json:"finalize"`
	FinalizeOnly bool   `json:"finalize_only"`
	ExactTiles   bool   `json:"exact_tiles"`
	Layout       string `json:"layout"`
	Seed         int64  `json:"seed"`
}

// Keyer derives cache keys.
type Keyer interface {
	// CheckpointKey is the key of the coordinate records of a run.
	CheckpointKey(problemHash string, opts CheckpointKeyOpts) string
	// SummaryKey is the key of the run summary stored next to a checkpoint.
	SummaryKey(checkpointKey string) string
}

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CheckpointKey implements Keyer.
func (DefaultKeyer) CheckpointKey(problemHash string, opts CheckpointKeyOpts) string {
	return hashKey("checkpoint", problemHash, opts)
}

// SummaryKey implements Keyer.
func (DefaultKeyer) SummaryKey(checkpointKey string) string {
	return "summary:" + checkpointKey
}
