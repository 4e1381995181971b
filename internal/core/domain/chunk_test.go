package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	assert.Equal(t, "chunk_0", ChunkID(0))
	assert.Equal(t, "chunk_41", ChunkID(41))
}

func TestMetadata_MapRoundTrip(t *testing.T) {
	meta := Metadata{
		ChunkID:     "3",
		Year:        "2023",
		Session:     "1회",
		Number:      "7",
		Category:    "데이터베이스",
		Subcategory: "SQL",
		Keywords:    "JOIN, GROUP BY",
	}

	m := meta.Map()
	assert.Len(t, m, 7)
	assert.Equal(t, "데이터베이스", m[MetaCategory])
	assert.Equal(t, meta, MetadataFromMap(m))
}

func TestMetadataFromMap_MissingKeys(t *testing.T) {
	meta := MetadataFromMap(map[string]string{MetaCategory: "네트워크", "extra": "x"})

	assert.Equal(t, "네트워크", meta.Category)
	assert.Empty(t, meta.Year)
	assert.Empty(t, meta.Keywords)
}

func TestRawQuestion_HasExamDate(t *testing.T) {
	assert.True(t, RawQuestion{Year: "2022", Session: "2회"}.HasExamDate())
	assert.False(t, RawQuestion{Year: "2022"}.HasExamDate())
	assert.False(t, RawQuestion{Session: "2회"}.HasExamDate())
}

func TestSearchResult_Similarity(t *testing.T) {
	assert.InDelta(t, 1.0, SearchResult{Distance: 0}.Similarity(), 1e-12)
	assert.InDelta(t, 0.75, SearchResult{Distance: 0.25}.Similarity(), 1e-12)

	// Monotonically decreasing in distance.
	prev := SearchResult{Distance: 0}.Similarity()
	for _, d := range []float64{0.1, 0.4, 0.9, 1.5, 2} {
		s := SearchResult{Distance: d}.Similarity()
		assert.Less(t, s, prev)
		prev = s
	}
}

func TestGeneration_Variants(t *testing.T) {
	model := ModelOutput("text", "gpt-4o-mini")
	assert.Equal(t, GenerationModel, model.Kind)
	assert.False(t, model.IsFallback())
	assert.Equal(t, "gpt-4o-mini", model.Model)

	fallback := FallbackOutput("tmpl", "no credential")
	assert.True(t, fallback.IsFallback())
	assert.Equal(t, "fallback", fallback.Kind.String())
	assert.Equal(t, "no credential", fallback.Reason)
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	assert.Len(t, cats, 6)
	assert.Contains(t, cats, "데이터베이스")
	assert.Contains(t, cats, "정보보안")
}
