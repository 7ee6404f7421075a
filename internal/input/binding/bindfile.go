package binding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/codec"
	"github.com/dshills/tickbind/internal/input/key"
)

// Binding is one parsed line of a binding file: a name and the event it
// waits for.
type Binding struct {
	// Name is the binding name chosen by the file author.
	Name string

	// Event describes what the binding matches.
	Event event.Event

	// Line is the 1-based line the binding was declared on.
	Line int
}

// Parser reads binding files. Kind and key names are resolved through the
// explicit variant tables and must also appear in the configured codec
// tables.
type Parser struct {
	codecs codec.Set
}

// NewParser creates a parser that accepts the names listed in codecs.
func NewParser(codecs codec.Set) *Parser {
	return &Parser{codecs: codecs}
}

// DefaultCodecs returns codec tables built from the event and key
// enumerations.
func DefaultCodecs() codec.Set {
	return codec.Set{Kinds: event.KindTable(), Keys: key.Table()}
}

// ParseFile reads and parses a binding file. Files ending in .yaml or .yml
// use the YAML format; everything else uses the line format.
// Either every binding in the file is returned or none is.
func (p *Parser) ParseFile(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, codec.IOError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return p.ParseYAML(path, data)
	default:
		return p.Parse(path, bytes.NewReader(data))
	}
}

// Parse reads the line format:
//
//	<name> <Kind> [<Key> [modifier...]]
//
// Blank lines and lines starting with '/' are ignored.
func (p *Parser) Parse(source string, r io.Reader) ([]Binding, error) {
	var out []Binding

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if codec.IsSkippable(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, codec.ParseError(source, lineNo, "binding %q has no event kind", fields[0])
		}

		var keyName string
		var mods []string
		if len(fields) > 2 {
			keyName = fields[2]
			mods = fields[3:]
		}

		b, err := p.resolve(fields[0], fields[1], keyName, mods)
		if err != nil {
			return nil, &codec.FileError{Path: source, Line: lineNo, Err: err}
		}
		b.Line = lineNo
		out = append(out, b)
	}
	if err := sc.Err(); err != nil {
		return nil, codec.IOError(source, err)
	}
	return out, nil
}

// yamlFile is the document shape of a YAML binding file.
type yamlFile struct {
	Bindings []yamlBinding `yaml:"bindings"`
}

type yamlBinding struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Key       string   `yaml:"key,omitempty"`
	Modifiers []string `yaml:"modifiers,omitempty"`

	line int
}

// UnmarshalYAML records the line of each entry for error reporting.
// Node.Decode does not inherit the decoder's KnownFields setting, so
// unknown fields are rejected here.
func (b *yamlBinding) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch f := n.Content[i]; f.Value {
			case "name", "kind", "key", "modifiers":
			default:
				return fmt.Errorf("line %d: field %s not found in binding", f.Line, f.Value)
			}
		}
	}
	type plain yamlBinding
	if err := n.Decode((*plain)(b)); err != nil {
		return err
	}
	b.line = n.Line
	return nil
}

// ParseYAML reads the YAML format:
//
//	bindings:
//	  - name: jump
//	    kind: KeyPressed
//	    key: Space
//	    modifiers: [shift]
func (p *Parser) ParseYAML(source string, data []byte) ([]Binding, error) {
	var doc yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, codec.ParseError(source, 0, "%v", err)
	}

	out := make([]Binding, 0, len(doc.Bindings))
	for _, yb := range doc.Bindings {
		if yb.Name == "" {
			return nil, codec.ParseError(source, yb.line, "binding has no name")
		}
		if yb.Kind == "" {
			return nil, codec.ParseError(source, yb.line, "binding %q has no event kind", yb.Name)
		}
		b, err := p.resolve(yb.Name, yb.Kind, yb.Key, yb.Modifiers)
		if err != nil {
			return nil, &codec.FileError{Path: source, Line: yb.line, Err: err}
		}
		b.Line = yb.line
		out = append(out, b)
	}
	return out, nil
}

// resolve turns textual fields into a Binding. The returned error wraps
// codec.ErrParse.
func (p *Parser) resolve(name, kindName, keyName string, modTokens []string) (Binding, error) {
	kind, err := p.kind(kindName)
	if err != nil {
		return Binding{}, err
	}

	ev := event.New(kind)
	if !kind.IsKeyboard() {
		if keyName != "" || len(modTokens) > 0 {
			return Binding{}, parseErr("event kind %s takes no key or modifiers", kind)
		}
		return Binding{Name: name, Event: ev}, nil
	}

	if keyName == "" {
		return Binding{}, parseErr("event kind %s requires a key", kind)
	}
	k, err := p.key(keyName)
	if err != nil {
		return Binding{}, err
	}
	mods, bad, ok := key.ParseModifiers(modTokens)
	if !ok {
		return Binding{}, parseErr("unrecognized modifier %q", bad)
	}

	ev.Key = k
	ev.Mods = mods
	return Binding{Name: name, Event: ev}, nil
}

func (p *Parser) kind(name string) (event.Kind, error) {
	if !p.codecs.Kinds.Contains(name) {
		return 0, parseErr("unknown event kind %q", name)
	}
	k, ok := event.KindFromName(name)
	if !ok {
		return 0, parseErr("event kind %q has no variant", name)
	}
	return k, nil
}

func (p *Parser) key(name string) (key.Key, error) {
	if !p.codecs.Keys.Contains(name) {
		if s := key.Suggest(name); s != "" && s != name {
			return 0, parseErr("unknown key %q (did you mean %q?)", name, s)
		}
		return 0, parseErr("unknown key %q", name)
	}
	k, ok := key.FromName(name)
	if !ok {
		return 0, parseErr("key %q has no variant", name)
	}
	return k, nil
}

func parseErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{codec.ErrParse}, args...)...)
}
