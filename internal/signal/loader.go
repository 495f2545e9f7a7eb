package signal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the schema document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	default:
		return "yaml"
	}
}

// FormatForPath picks the format from the file extension. Anything that is not
// .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads and validates a schema document. Validation is all-or-nothing:
// either every signal is valid or no schema is returned.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read signal schema: %w", err)
	}

	schema, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

// Parse validates a schema document held in memory.
func Parse(data []byte, format Format) (*Schema, error) {
	var (
		raws []rawSignal
		err  error
	)
	switch format {
	case FormatTOML:
		raws, err = decodeTOML(data)
	default:
		raws, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(raws))
	for _, raw := range raws {
		def, err := validateSignal(raw)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return NewSchema(defs...)
}

var (
	errNoSignalsKey   = configErr("", "document must be a mapping with a top-level 'signals' key")
	errSignalsInvalid = configErr("", "'signals' must be a non-empty mapping")
)

func decodeYAML(data []byte) ([]rawSignal, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, configErr("", "malformed YAML: %v", err)
	}

	root := resolve(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return nil, errNoSignalsKey
	}

	var signals *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "signals" {
			signals = resolve(root.Content[i+1])
			break
		}
	}
	if signals == nil {
		return nil, errNoSignalsKey
	}
	if signals.Kind != yaml.MappingNode || len(signals.Content) == 0 {
		return nil, errSignalsInvalid
	}

	raws := make([]rawSignal, 0, len(signals.Content)/2)
	seen := make(map[string]bool, len(signals.Content)/2)
	for i := 0; i+1 < len(signals.Content); i += 2 {
		name := signals.Content[i].Value
		if seen[name] {
			return nil, configErr(name, "declared more than once")
		}
		seen[name] = true

		val := resolve(signals.Content[i+1])
		if val.Kind != yaml.MappingNode {
			return nil, configErr(name, "must map to a mapping")
		}

		var fields map[string]any
		if err := val.Decode(&fields); err != nil {
			return nil, configErr(name, "malformed entry: %v", err)
		}
		raws = append(raws, rawFromFields(name, fields))
	}
	return raws, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func decodeTOML(data []byte) ([]rawSignal, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, configErr("", "malformed TOML: %v", err)
	}

	v, ok := doc["signals"]
	if !ok {
		return nil, errNoSignalsKey
	}
	signals, ok := v.(map[string]any)
	if !ok || len(signals) == 0 {
		return nil, errSignalsInvalid
	}

	// Table order from the document; inline tables may not show up in the
	// key list, so any leftovers follow in name order.
	order := make([]string, 0, len(signals))
	seen := make(map[string]bool, len(signals))
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "signals" && !seen[key[1]] {
			if _, ok := signals[key[1]]; ok {
				order = append(order, key[1])
				seen[key[1]] = true
			}
		}
	}
	var rest []string
	for name := range signals {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	raws := make([]rawSignal, 0, len(order))
	for _, name := range order {
		fields, ok := signals[name].(map[string]any)
		if !ok {
			return nil, configErr(name, "must map to a table")
		}
		raws = append(raws, rawFromFields(name, fields))
	}
	return raws, nil
}
