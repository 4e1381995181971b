package domain

import "strconv"

// ChunkIDPrefix prefixes the positional index in every chunk ID.
const ChunkIDPrefix = "chunk_"

// Metadata is the flattened, all-string description attached to a chunk.
// Keywords is the comma-joined keyword list.
type Metadata struct {
	ChunkID     string
	Year        string
	Session     string
	Number      string
	Category    string
	Subcategory string
	Keywords    string
}

// Metadata keys as stored alongside each chunk.
const (
	MetaChunkID     = "chunk_id"
	MetaYear        = "year"
	MetaSession     = "session"
	MetaNumber      = "number"
	MetaCategory    = "category"
	MetaSubcategory = "subcategory"
	MetaKeywords    = "keywords"
)

// Map returns the metadata as a scalar key-value mapping.
func (m Metadata) Map() map[string]string {
	return map[string]string{
		MetaChunkID:     m.ChunkID,
		MetaYear:        m.Year,
		MetaSession:     m.Session,
		MetaNumber:      m.Number,
		MetaCategory:    m.Category,
		MetaSubcategory: m.Subcategory,
		MetaKeywords:    m.Keywords,
	}
}

// MetadataFromMap rebuilds Metadata from a key-value mapping.
// Unknown keys are ignored and missing keys stay empty.
func MetadataFromMap(values map[string]string) Metadata {
	return Metadata{
		ChunkID:     values[MetaChunkID],
		Year:        values[MetaYear],
		Session:     values[MetaSession],
		Number:      values[MetaNumber],
		Category:    values[MetaCategory],
		Subcategory: values[MetaSubcategory],
		Keywords:    values[MetaKeywords],
	}
}

// Chunk is one retrievable unit of text. Every chunk represents exactly
// one RawQuestion; questions are never split.
type Chunk struct {
	// ID is "chunk_<index>", unique within one build.
	ID string

	// Text is the rendered question used for embedding and display.
	Text string

	// Metadata describes the source question.
	Metadata Metadata
}

// ChunkID returns the positional chunk ID for index i.
func ChunkID(i int) string {
	return ChunkIDPrefix + strconv.Itoa(i)
}
