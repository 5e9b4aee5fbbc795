package docgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadJSON reads precomputed react-docgen output.
func LoadJSON(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if r.Props == nil {
		r.Props = make(map[string]*RawProp)
	}
	return &r, nil
}

// JSONParser serves docgen results produced by an external tool. The file
// for src/Button/Button.js is <Dir>/Button.json; the source and options are
// ignored.
type JSONParser struct {
	Dir string
}

// Parse implements Parser.
func (p JSONParser) Parse(_ []byte, filename string, _ Options) (*Result, error) {
	name, _, _ := strings.Cut(filepath.Base(filename), ".")
	path := filepath.Join(p.Dir, name+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoDefinition)
	}
	return LoadJSON(path)
}
