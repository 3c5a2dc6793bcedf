package hll

// Observation records that a hash of the given rank was seen at the given timestamp.
type Observation struct {
	Timestamp int64
	Rank      uint8
}

// Before reports whether o sorts before other.
// Observations are ordered by timestamp, then by rank, so that among
// observations sharing a timestamp the highest rank is the most recent one.
func (o Observation) Before(other Observation) bool {
	if o.Timestamp == other.Timestamp {
		return o.Rank < other.Rank
	}
	return o.Timestamp < other.Timestamp
}
