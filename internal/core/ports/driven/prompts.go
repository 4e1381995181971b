package driven

// PromptStore provides the prompt templates used for generation.
type PromptStore interface {
	// Load returns the template for name (see domain.Prompt*).
	// Unknown names return domain.ErrNotFound; a missing or unusable file
	// yields the built-in default.
	Load(name string) (string, error)
}
