package runtime

import (
	"chat-bot/domain"
	"chat-bot/errors"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed corpus/*
var corpusFolder embed.FS

// DefaultCorpusFile is the embedded corpus used when no path is configured.
const DefaultCorpusFile = "corpus/default.yaml"

// CorpusLoader reads a YAML corpus document from a filesystem and enforces
// the configuration invariants before anything gets trained.
type CorpusLoader struct {
	fs       fs.FS
	validate *validator.Validate
}

// NewCorpusLoader creates a loader reading from the provided filesystem.
func NewCorpusLoader(f fs.FS) *CorpusLoader {
	return &CorpusLoader{fs: f, validate: validator.New()}
}

// LoadCorpus loads the file at path, or the embedded default corpus when path is empty.
func LoadCorpus(path string) (domain.Corpus, error) {
	if path == "" {
		return NewCorpusLoader(corpusFolder).Load(DefaultCorpusFile)
	}
	return NewCorpusLoader(os.DirFS(filepath.Dir(path))).Load(filepath.Base(path))
}

// Load reads and parses name within the loader filesystem.
func (l *CorpusLoader) Load(name string) (domain.Corpus, error) {
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return domain.Corpus{}, fmt.Errorf("reading corpus %s: %w", name, err)
	}
	return l.Parse(data)
}

// Parse decodes a corpus document and validates it.
// Structural problems are reported as *errors.ConfigurationError.
func (l *CorpusLoader) Parse(data []byte) (domain.Corpus, error) {
	var corpus domain.Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return domain.Corpus{}, fmt.Errorf("decoding corpus: %w", err)
	}

	if err := l.validate.Struct(corpus); err != nil {
		return domain.Corpus{}, toConfigurationError(err)
	}
	if err := corpus.Responses.Validate(); err != nil {
		return domain.Corpus{}, err
	}
	return corpus, nil
}

// toConfigurationError maps the first validation failure onto a sentinel.
func toConfigurationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewConfigurationError(errors.ErrInvalidExample, "%v", err)
	}

	fe := validationErrors[0]
	namespace := fe.StructNamespace()
	switch {
	case strings.Contains(namespace, "Examples["):
		return errors.NewConfigurationError(errors.ErrInvalidExample, "%s failed on %q", namespace, fe.Tag())
	case fe.StructField() == "Examples":
		return errors.NewConfigurationError(errors.ErrEmptyCorpus, "%s failed on %q", namespace, fe.Tag())
	case fe.StructField() == "Responses":
		return errors.NewConfigurationError(errors.ErrMissingFallback, "%s failed on %q", namespace, fe.Tag())
	default:
		return errors.NewConfigurationError(errors.ErrInvalidExample, "%s failed on %q", namespace, fe.Tag())
	}
}
