package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	p, err := c.Lookup(0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "hello world" || !strings.HasPrefix(p.Source, "++++++++[") {
		t.Errorf("program 0 = %+v", p)
	}

	p, err = c.Lookup(12345)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != NotFoundID {
		t.Errorf("unknown id served %+v", p)
	}

	list := c.Programs()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("programs not sorted: %v", list)
		}
	}
}

func TestLookupWithoutFallback(t *testing.T) {
	c, err := Parse([]byte("programs:\n  - id: 1\n    name: one\n    source: \"+\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Lookup(2); !errors.Is(err, ErrUnknownProgram) {
		t.Errorf("err = %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	table := []struct {
		name  string
		input string
	}{
		{name: "duplicate", input: "programs:\n  - id: 1\n  - id: 1\n"},
		{name: "unknown field", input: "programs:\n  - id: 1\n    author: me\n"},
		{name: "not a list", input: "programs: 4\n"},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse([]byte(test.input)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Programs()) != 0 {
		t.Errorf("programs = %v", c.Programs())
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte("programs:\n  - id: 7\n    name: seven\n    source: \"+++++++.\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(catalogPath)
	if err != nil {
		t.Fatal(err)
	}
	if p, err := c.Lookup(7); err != nil || p.Source != "+++++++." {
		t.Errorf("Lookup(7) = %+v, %v", p, err)
	}

	sourcePath := filepath.Join(dir, "prog.bf")
	if err := os.WriteFile(sourcePath, []byte("+[-]"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadSource(sourcePath)
	if err != nil {
		t.Fatal(err)
	}
	if p.Source != "+[-]" {
		t.Errorf("source = %q", p.Source)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected error for missing catalog")
	}
}
