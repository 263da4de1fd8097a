package style

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Registry is the closed set of styles available to a run.
type Registry struct {
	styles map[string]Config
}

// NewRegistry returns a registry holding the built-in styles.
func NewRegistry() *Registry {
	r := &Registry{styles: map[string]Config{}}
	r.styles[DefaultName] = GreensponDefault()
	return r
}

// Lookup returns a copy of the named style.
func (r *Registry) Lookup(name string) (Config, error) {
	if name == "" {
		name = DefaultName
	}
	cfg, ok := r.styles[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return cfg.Clone(), nil
}

// Names returns the registered style names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register validates and adds a style, replacing one of the same name.
func (r *Registry) Register(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	r.styles[cfg.Name] = cfg.Clone()
	return nil
}

// Validate checks a style's struct constraints.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("style %q: %w", cfg.Name, err)
	}
	return nil
}

type styleFile struct {
	Styles []yaml.Node `yaml:"styles"`
}

type styleHeader struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"`
}

// LoadFile registers every style in a YAML file. Each entry starts from
// its "base" style (the default when omitted) and overrides only the keys
// it sets.
func (r *Registry) LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}
	return r.LoadYAML(data)
}

// LoadYAML is LoadFile on in-memory content.
func (r *Registry) LoadYAML(data []byte) ([]string, error) {
	var f styleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse style file: %w", err)
	}

	var names []string
	for i := range f.Styles {
		node := &f.Styles[i]
		var hdr styleHeader
		if err := node.Decode(&hdr); err != nil {
			return nil, fmt.Errorf("style #%d: %w", i, err)
		}
		base, err := r.Lookup(hdr.Base)
		if err != nil {
			return nil, fmt.Errorf("style %q: base: %w", hdr.Name, err)
		}
		cfg := base
		cfg.Name = ""
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("style %q: %w", hdr.Name, err)
		}
		if err := r.Register(cfg); err != nil {
			return nil, err
		}
		names = append(names, cfg.Name)
	}
	return names, nil
}
