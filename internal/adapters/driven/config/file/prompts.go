package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// requiredPlaceholders lists the format verbs a customised prompt must keep.
// A file missing any of them is ignored in favour of the default.
var requiredPlaceholders = map[string][]string{
	domain.PromptPracticeUser: {"%[1]s", "%[2]s", "%[3]d"},
}

const promptReadme = `# gichul prompts

This directory contains the prompts used to generate practice questions
when an LLM provider is configured.

- practice_system.txt: system instruction for the question writer
- practice_user.txt: request carrying the keyword, reference questions and count

Edits take effect on the next generation. Delete a file to restore its
default on the next run.

practice_user.txt uses indexed Go fmt verbs and must keep all three:
%[1]s is the keyword, %[2]s the reference questions, %[3]d the count.
`

// PromptStore serves prompt templates from files in a directory, seeding
// it with the built-in defaults on first use. Files are read on every Load.
type PromptStore struct {
	dir      string
	defaults map[string]string

	seedOnce sync.Once
	seedErr  error
}

// NewPromptStore returns a store rooted at dir. No I/O happens until Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("prompt directory: %w", domain.ErrInvalidInput)
	}
	return &PromptStore{dir: dir, defaults: domain.DefaultPrompts()}, nil
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Load returns the prompt called name.
func (s *PromptStore) Load(name string) (string, error) {
	def, ok := s.defaults[name]
	if !ok {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}

	s.seedOnce.Do(s.seed)
	if s.seedErr != nil {
		return def, nil
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("read prompt %s: %v", name, err)
		}
		return def, nil
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return def, nil
	}
	if missing := missingPlaceholders(name, prompt); len(missing) > 0 {
		logger.Warn("prompt %s is missing %s, using the default", s.path(name), strings.Join(missing, ", "))
		return def, nil
	}
	return prompt, nil
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// seed creates the directory and writes any default that has no file yet.
// Existing files are never overwritten.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		logger.Debug("%v", s.seedErr)
		return
	}

	files := map[string]string{"README.md": promptReadme}
	for name, content := range s.defaults {
		files[name+".txt"] = content
	}
	for file, content := range files {
		if err := writeIfAbsent(filepath.Join(s.dir, file), content); err != nil {
			s.seedErr = err
			logger.Debug("%v", err)
			return
		}
	}
}

func writeIfAbsent(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func missingPlaceholders(name, prompt string) []string {
	var missing []string
	for _, p := range requiredPlaceholders[name] {
		if !strings.Contains(prompt, p) {
			missing = append(missing, p)
		}
	}
	return missing
}
