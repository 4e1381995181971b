package domain

// GenerationKind identifies which path produced a generation.
type GenerationKind string

// Generation paths.
const (
	// GenerationModel is text produced by the remote generative model.
	GenerationModel GenerationKind = "model"

	// GenerationFallback is text produced by the offline template.
	GenerationFallback GenerationKind = "fallback"
)

// String returns the string representation.
func (k GenerationKind) String() string {
	return string(k)
}

// Generation is the result of one generate call.
type Generation struct {
	// Kind is the path that produced Text.
	Kind GenerationKind

	// Text is the practice-question document.
	Text string

	// Model names the LLM for GenerationModel results.
	Model string

	// Reason explains why the fallback path was taken.
	Reason string
}

// ModelOutput builds a Generation produced by the model.
func ModelOutput(text, model string) Generation {
	return Generation{Kind: GenerationModel, Text: text, Model: model}
}

// FallbackOutput builds a Generation produced by the template path.
func FallbackOutput(text, reason string) Generation {
	return Generation{Kind: GenerationFallback, Text: text, Reason: reason}
}

// IsFallback reports whether the template path produced this generation.
func (g Generation) IsFallback() bool {
	return g.Kind == GenerationFallback
}
