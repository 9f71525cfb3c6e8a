package recorder

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordWeightedRace(_ *WeightedRaceRecord) error { return nil }
func (n *NoopRecorder) RecordSegmentRace(_ *SegmentRaceRecord) error   { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
