package stages

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// catalogFile is the on-disk layout of a stage catalog
type catalogFile struct {
	Stages []entities.Stage `yaml:"stages"`
}

// NewYAML loads a stage catalog from a YAML file
func NewYAML(path string) (*InMemoryRepository, error) {
	if path == "" {
		return nil, errors.InvalidArgument("stage catalog path is required")
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open stage catalog %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadYAML(f)
}

// LoadYAML decodes a stage catalog
func LoadYAML(r io.Reader) (*InMemoryRepository, error) {
	var catalog catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode stage catalog")
	}

	return NewInMemory(catalog.Stages...)
}
