// Package vectors holds the embedding encoding and brute-force cosine
// ranking shared by the vector index implementations.
package vectors

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// BatchSize is the number of chunks embedded and inserted per batch.
const BatchSize = 100

// Entry is one stored row of a collection.
type Entry struct {
	// Position is the chunk's index in the corpus it was indexed from.
	Position int

	ID        string
	Text      string
	Metadata  domain.Metadata
	Embedding []float32
}

// Encode converts a []float32 to little-endian bytes for storage.
func Encode(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Decode converts bytes produced by Encode back to []float32.
func Decode(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// FromFloat64 narrows a float64 embedding as returned by most provider APIs.
func FromFloat64(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

// CosineDistance returns 1 - cos(a, b). Mismatched lengths and zero
// vectors are maximally distant from everything.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Rank scores entries against query and returns at most topK results by
// ascending distance. Ties keep corpus order. topK <= 0 yields nothing.
func Rank(query []float32, entries []Entry, topK int) []domain.SearchResult {
	if topK <= 0 || len(entries) == 0 {
		return []domain.SearchResult{}
	}

	type scored struct {
		entry    Entry
		distance float64
	}
	ranked := make([]scored, len(entries))
	for i, e := range entries {
		ranked[i] = scored{entry: e, distance: CosineDistance(query, e.Embedding)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].entry.Position < ranked[j].entry.Position
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	results := make([]domain.SearchResult, len(ranked))
	for i, r := range ranked {
		results[i] = domain.SearchResult{
			ID:       r.entry.ID,
			Text:     r.entry.Text,
			Metadata: r.entry.Metadata,
			Distance: r.distance,
		}
	}
	return results
}

// Batches splits chunks into consecutive slices of at most size elements.
func Batches(chunks []domain.Chunk, size int) [][]domain.Chunk {
	if size <= 0 {
		size = BatchSize
	}
	var out [][]domain.Chunk
	for start := 0; start < len(chunks); start += size {
		end := min(start+size, len(chunks))
		out = append(out, chunks[start:end])
	}
	return out
}

// Texts returns the text of each chunk in order.
func Texts(chunks []domain.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts
}
