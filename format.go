package configurables

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultSection is the reserved fallback section name. File sources
// look up fields in the schema's named section first, then here, then
// among top-level flat keys.
const DefaultSection = "DEFAULT"

// Document is the normalized form every codec parses to and serializes
// from: section name -> key -> raw string value. Formats without a
// section concept put every key under the "" section.
type Document map[string]map[string]string

// ParseFunc parses file text into a Document.
type ParseFunc func(data []byte) (Document, error)

// SerializeFunc renders a Document as file text. keyOrder, when
// non-nil, names keys in their preferred output order; keys it does not
// name follow in sorted order. Codecs whose encoders impose their own
// key ordering may ignore it.
type SerializeFunc func(doc Document, keyOrder []string) ([]byte, error)

// Format is one registered codec. Either half may be nil when a format
// only supports one direction.
type Format struct {
	Parse     ParseFunc
	Serialize SerializeFunc
}

// Registry maps file extensions (or explicit tags) to codecs. Populate
// a registry before resolution begins; it is read-only afterwards.
type Registry struct {
	formats map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// Register binds a codec to a tag, replacing any previous registration.
func (r *Registry) Register(tag string, f Format) {
	r.formats[normalizeTag(tag)] = f
}

// RegisterParser binds only the parse half of a codec, preserving any
// previously registered serializer for the tag.
func (r *Registry) RegisterParser(tag string, parse ParseFunc) {
	key := normalizeTag(tag)
	f := r.formats[key]
	f.Parse = parse
	r.formats[key] = f
}

// RegisterEmitter binds only the serialize half of a codec, preserving
// any previously registered parser for the tag.
func (r *Registry) RegisterEmitter(tag string, serialize SerializeFunc) {
	key := normalizeTag(tag)
	f := r.formats[key]
	f.Serialize = serialize
	r.formats[key] = f
}

// Lookup returns the codec registered for tag.
func (r *Registry) Lookup(tag string) (Format, bool) {
	f, ok := r.formats[normalizeTag(tag)]
	return f, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	return sortedKeys(r.formats)
}

// forPath selects a codec by the path's extension.
func (r *Registry) forPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := r.formats[ext]
	if !ok {
		return Format{}, &UnknownFormatError{Tag: ext}
	}
	return f, nil
}

// normalizeTag lowercases and ensures a leading dot so "ini" and ".INI"
// address the same registration.
func normalizeTag(tag string) string {
	tag = strings.ToLower(tag)
	if !strings.HasPrefix(tag, ".") {
		tag = "." + tag
	}
	return tag
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that the built-in
// codecs are registered on at init.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterFormat registers a codec on the default registry.
func RegisterFormat(tag string, f Format) { defaultRegistry.Register(tag, f) }

// RegisterParser registers a parser on the default registry.
func RegisterParser(tag string, parse ParseFunc) { defaultRegistry.RegisterParser(tag, parse) }

// RegisterEmitter registers a serializer on the default registry.
func RegisterEmitter(tag string, serialize SerializeFunc) {
	defaultRegistry.RegisterEmitter(tag, serialize)
}

func init() {
	// Plain "key = value" output, no column alignment.
	ini.PrettyFormat = false
	ini.PrettyEqual = true

	iniFormat := Format{Parse: parseINI, Serialize: serializeINI}
	tomlFormat := Format{Parse: parseTOML, Serialize: serializeTOML}
	yamlFormat := Format{Parse: parseYAML, Serialize: serializeYAML}

	defaultRegistry.Register(".ini", iniFormat)
	defaultRegistry.Register(".conf", iniFormat)
	defaultRegistry.Register(".toml", tomlFormat)
	defaultRegistry.Register(".tml", tomlFormat)
	defaultRegistry.Register(".yaml", yamlFormat)
	defaultRegistry.Register(".yml", yamlFormat)
	defaultRegistry.Register(".json", Format{Parse: parseJSON, Serialize: serializeJSON})
}

// parseINI reads INI text. Keys outside any [Section] header land in
// the DEFAULT section, matching the reserved fallback semantics.
func parseINI(data []byte) (Document, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("invalid INI: %w", err)
	}

	doc := make(Document)
	for _, sec := range f.Sections() {
		keys := sec.KeysHash()
		if len(keys) == 0 {
			continue
		}
		doc[sec.Name()] = keys
	}
	return doc, nil
}

func serializeINI(doc Document, keyOrder []string) ([]byte, error) {
	f := ini.Empty()
	for _, name := range sortedKeys(doc) {
		target := name
		if target == "" {
			target = ini.DefaultSection
		}
		sec, err := f.NewSection(target)
		if err != nil {
			return nil, fmt.Errorf("invalid INI section %q: %w", target, err)
		}
		keys := doc[name]
		for _, k := range orderedKeys(keys, keyOrder) {
			if _, err := sec.NewKey(k, keys[k]); err != nil {
				return nil, fmt.Errorf("invalid INI key %q: %w", k, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render INI: %w", err)
	}
	return buf.Bytes(), nil
}

func parseTOML(data []byte) (Document, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return sectionize(raw), nil
}

// serializeTOML ignores keyOrder: the TOML encoder sorts map keys.
func serializeTOML(doc Document, _ []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(desectionize(doc)); err != nil {
		return nil, fmt.Errorf("failed to render TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func parseYAML(data []byte) (Document, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return sectionize(raw), nil
}

// serializeYAML ignores keyOrder: yaml.v3 sorts map keys.
func serializeYAML(doc Document, _ []string) ([]byte, error) {
	data, err := yaml.Marshal(desectionize(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to render YAML: %w", err)
	}
	return data, nil
}

func parseJSON(data []byte) (Document, error) {
	raw := make(map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // preserve number precision through stringification
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return sectionize(raw), nil
}

// serializeJSON ignores keyOrder: encoding/json sorts map keys.
func serializeJSON(doc Document, _ []string) ([]byte, error) {
	data, err := json.MarshalIndent(desectionize(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// sectionize normalizes a decoded map: top-level scalars become flat
// ("" section) keys, top-level maps become sections. Maps nested any
// deeper are ignored; hierarchical schemas are out of scope.
func sectionize(raw map[string]any) Document {
	doc := make(Document)
	for key, value := range raw {
		if sub, isMap := value.(map[string]any); isMap {
			sec := make(map[string]string)
			for k, v := range sub {
				if _, nested := v.(map[string]any); nested {
					continue
				}
				sec[k] = stringifyValue(v)
			}
			doc[key] = sec
			continue
		}
		flat := doc[""]
		if flat == nil {
			flat = make(map[string]string)
			doc[""] = flat
		}
		flat[key] = stringifyValue(value)
	}
	return doc
}

// desectionize is the inverse: sections become sub-maps, the "" section
// becomes top-level keys.
func desectionize(doc Document) map[string]any {
	nested := make(map[string]any, len(doc))
	for name, keys := range doc {
		if name == "" {
			for k, v := range keys {
				nested[k] = v
			}
			continue
		}
		sub := make(map[string]any, len(keys))
		for k, v := range keys {
			sub[k] = v
		}
		nested[name] = sub
	}
	return nested
}

// stringifyValue renders a decoded scalar as the raw string form fed to
// coercers. Float formatting uses the shortest round-trippable form.
func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
