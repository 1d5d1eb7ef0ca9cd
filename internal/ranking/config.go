package ranking

// BM25Config holds the BM25 free parameters.
type BM25Config struct {
	K1 float64 `yaml:"k1"` // default: 1.5, term-frequency saturation
	B  float64 `yaml:"b"`  // default: 0.75, length normalization strength
}

// DefaultBM25Config returns the default BM25 parameters.
func DefaultBM25Config() BM25Config {
	return BM25Config{K1: 1.5, B: 0.75}
}
