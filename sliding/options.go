package sliding

import "github.com/keilerkonzept/hll"

type Option func(*Sketch)

// WithHasher sets the hash function applied to added values.
func WithHasher(h hll.Hasher) Option { return func(s *Sketch) { s.hasher = h } }

// WithCalibration sets the estimator constants and bias tables.
func WithCalibration(c hll.Calibration) Option { return func(s *Sketch) { s.calibration = c } }
