package persona

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_SevenPersonas(t *testing.T) {
	reg, err := NewRegistry(Defaults())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if reg.Len() != 7 {
		t.Fatalf("expected 7 personas, got %d", reg.Len())
	}
	for id := 1; id <= 7; id++ {
		p, err := reg.Lookup(id)
		if err != nil {
			t.Fatalf("lookup %d: %v", id, err)
		}
		if p.DisplayName == "" || p.SystemPrompt == "" {
			t.Fatalf("persona %d has empty fields", id)
		}
	}
}

func TestLookup_UnknownID(t *testing.T) {
	reg, err := NewRegistry(Defaults())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	for _, id := range []int{0, 8, -1, 100} {
		if _, err := reg.Lookup(id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("lookup %d: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Persona{
		{ID: 1, DisplayName: "A", SystemPrompt: "a"},
		{ID: 1, DisplayName: "B", SystemPrompt: "b"},
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	content := "personas:\n  - id: 3\n    prompt: \"You are a test listener.\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	personas, err := LoadOverrides(path, Defaults())
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	reg, err := NewRegistry(personas)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	p, err := reg.Lookup(3)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.SystemPrompt != "You are a test listener." {
		t.Fatalf("override not applied: %q", p.SystemPrompt)
	}
	if p.DisplayName != "Empathy Bot" {
		t.Fatalf("display name must not change: %q", p.DisplayName)
	}
}

func TestLoadOverrides_UnknownID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.yaml")
	if err := os.WriteFile(path, []byte("personas:\n  - id: 99\n    prompt: \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadOverrides(path, Defaults()); err == nil {
		t.Fatal("expected error for unknown id")
	}
}
