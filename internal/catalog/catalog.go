package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// NotFoundID is served for ids missing from the catalog.
const NotFoundID = 999

var ErrUnknownProgram = errors.New("unknown program")

//go:embed programs.yaml
var defaultCatalog []byte

type Program struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

type Catalog struct {
	programs map[int]Program
}

type catalogFile struct {
	Programs []Program `yaml:"programs"`
}

func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Load(filename string) (*Catalog, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return decode(file)
}

func Parse(data []byte) (*Catalog, error) {
	return decode(bytes.NewReader(data))
}

func decode(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw catalogFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Catalog{programs: make(map[int]Program)}, nil
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{programs: make(map[int]Program, len(raw.Programs))}
	for _, p := range raw.Programs {
		if _, ok := c.programs[p.ID]; ok {
			return nil, fmt.Errorf("catalog: duplicate program id %d", p.ID)
		}
		c.programs[p.ID] = p
	}
	return c, nil
}

// Lookup returns the program with the given id, or the not found program
// when the catalog has one.
func (c *Catalog) Lookup(id int) (Program, error) {
	if p, ok := c.programs[id]; ok {
		return p, nil
	}
	if p, ok := c.programs[NotFoundID]; ok {
		return p, nil
	}
	return Program{}, fmt.Errorf("%w: %d", ErrUnknownProgram, id)
}

func (c *Catalog) Programs() []Program {
	list := make([]Program, 0, len(c.programs))
	for _, p := range c.programs {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// LoadSource reads a program straight from a source file.
func LoadSource(filename string) (Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Program{}, err
	}
	return Program{
		ID:     -1,
		Name:   filename,
		Source: string(data),
	}, nil
}
