package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", `[{"name":"milk","price":3.5},{"name":"bread","price":2.5}]`, false},
		{"free item", `[{"name":"sample","price":0}]`, false},
		{"invalid json", `{not json`, true},
		{"not a list", `{"name":"milk","price":3.5}`, true},
		{"empty list", `[]`, true},
		{"empty name", `[{"name":"  ","price":1.0}]`, true},
		{"duplicate name", `[{"name":"milk","price":3.5},{"name":"milk","price":2.0}]`, true},
		{"duplicate differs only by case", `[{"name":"Milk","price":3.5},{"name":"milk","price":2.0}]`, true},
		{"negative price", `[{"name":"milk","price":-1.0}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.content)
			c, err := Load(path, log)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrCatalogLoad) {
					t.Fatalf("expected ErrCatalogLoad, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Len() == 0 {
				t.Fatal("catalog is empty")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), log)
	if !errors.Is(err, domain.ErrCatalogLoad) {
		t.Fatalf("expected ErrCatalogLoad, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := writeCatalog(t, `[{"name":"Peanut Butter","price":5.75},{"name":"milk","price":3.5}]`)
	c, err := Load(path, log)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"milk", "milk", true},
		{"MILK", "milk", true},
		{"  milk  ", "milk", true},
		{"peanut butter", "Peanut Butter", true},
		{"caviar", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			it, ok := c.Lookup(tt.query)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok=%v, want %v", tt.query, ok, tt.ok)
			}
			if ok && it.Name != tt.want {
				t.Fatalf("expected canonical name %q, got %q", tt.want, it.Name)
			}
		})
	}
}

func TestItemsPreserveDocumentOrder(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := writeCatalog(t, `[{"name":"bread","price":2.5},{"name":"apples","price":0.6},{"name":"milk","price":3.5}]`)
	c, err := Load(path, log)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"bread", "apples", "milk"}
	items := c.Items()
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("item %d: expected %q, got %q", i, name, items[i].Name)
		}
	}
}
