package persona

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrNotFound is returned by Lookup for ids outside the configured set.
var ErrNotFound = errors.New("persona not found")

type Persona struct {
	ID           int
	DisplayName  string
	SystemPrompt string
}

// Registry is the fixed persona table. It is built once at startup and
// safe for unbounded concurrent reads.
type Registry struct {
	byID map[int]Persona
}

func NewRegistry(personas []Persona) (*Registry, error) {
	if len(personas) == 0 {
		return nil, errors.New("persona: at least one persona is required")
	}
	byID := make(map[int]Persona, len(personas))
	for _, p := range personas {
		if p.ID <= 0 {
			return nil, fmt.Errorf("persona: invalid id %d for %q", p.ID, p.DisplayName)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("persona: duplicate id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Registry{byID: byID}, nil
}

func (r *Registry) Lookup(botID int) (Persona, error) {
	p, ok := r.byID[botID]
	if !ok {
		return Persona{}, ErrNotFound
	}
	return p, nil
}

func (r *Registry) Len() int { return len(r.byID) }

type overrideFile struct {
	Personas []struct {
		ID     int    `yaml:"id"`
		Prompt string `yaml:"prompt"`
	} `yaml:"personas"`
}

// LoadOverrides replaces system prompts of built-in personas from a YAML file.
// Ids that do not exist in the default set are rejected; display names and the
// set of ids cannot be changed.
func LoadOverrides(path string, personas []Persona) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse personas file: %w", err)
	}

	out := append([]Persona(nil), personas...)
	for _, o := range f.Personas {
		found := false
		for i := range out {
			if out[i].ID == o.ID {
				if o.Prompt != "" {
					out[i].SystemPrompt = o.Prompt
				}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("personas file: unknown persona id %d", o.ID)
		}
	}
	return out, nil
}
