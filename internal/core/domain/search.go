package domain

// SearchResult is a single similarity hit from the vector index.
type SearchResult struct {
	// ID is the matched chunk ID.
	ID string

	// Text is the stored chunk text.
	Text string

	// Metadata is the stored chunk metadata.
	Metadata Metadata

	// Distance is the cosine distance to the query (0 = identical).
	Distance float64
}

// Similarity returns 1 - Distance. It is derived for display and never stored.
func (r SearchResult) Similarity() float64 {
	return 1 - r.Distance
}
