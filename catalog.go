package wisteria

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PinSpec describes one pin of a template: its local identifier, display
// name, type tags, and optional default literal.
type PinSpec struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      PinType       `json:"type"`
	Dir       PinDir        `json:"dir"`
	Container ContainerKind `json:"containerType,omitempty"`
	Default   any           `json:"defaultValue,omitempty"`
	IsCustom  bool          `json:"isCustom,omitempty"`
}

// Template is a catalog entry nodes are instantiated from.
type Template struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Category string    `json:"category,omitempty"`
	Pins     []PinSpec `json:"pins"`
	// Singleton limits the template to at most one live instance per graph.
	Singleton bool `json:"isSingleton,omitempty"`
	// CustomPins allows instances to carry more pins than the template
	// (dynamic-parameter nodes); on load the longer serialized set wins.
	CustomPins bool `json:"allowsCustomPins,omitempty"`
}

// Catalog supplies node templates by key and conversion-adapter lookups.
// It is an injected collaborator: the graph never assumes a concrete
// implementation, so tests can substitute fakes.
type Catalog interface {
	// Get returns the template registered under key.
	Get(key string) (*Template, bool)
	// ConversionKey returns the key of the adapter template converting
	// from one pin value type to another, if one is registered.
	ConversionKey(from, to PinType) (string, bool)
}

// VariableCatalog extends Catalog with variable-backed template management
// (Get_<name> / Set_<name> accessor pairs).
type VariableCatalog interface {
	Catalog
	RegisterVariable(name string, typ PinType, container ContainerKind, def any)
	UnregisterVariable(name string)
}

type conversionPair struct {
	from, to PinType
}

// Registry is the in-memory Catalog implementation.
type Registry struct {
	templates   map[string]*Template
	conversions map[conversionPair]string
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates:   make(map[string]*Template),
		conversions: make(map[conversionPair]string),
	}
}

// Register adds or replaces a template under its key.
func (r *Registry) Register(t *Template) {
	r.templates[t.Key] = t
}

// Unregister removes the template registered under key. No-op if absent.
func (r *Registry) Unregister(key string) {
	delete(r.templates, key)
}

// Get returns the template registered under key.
func (r *Registry) Get(key string) (*Template, bool) {
	t, ok := r.templates[key]
	return t, ok
}

// Keys returns all registered template keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RegisterConversion declares that the template under key adapts values of
// type from to values of type to. The template is expected to expose a
// "val_in" input and a "val_out" output.
func (r *Registry) RegisterConversion(from, to PinType, key string) {
	r.conversions[conversionPair{from, to}] = key
}

// ConversionKey returns the adapter template key for the (from, to) pair.
func (r *Registry) ConversionKey(from, to PinType) (string, bool) {
	key, ok := r.conversions[conversionPair{from, to}]
	return key, ok
}

// RegisterVariable installs the Get_<name> / Set_<name> accessor templates
// for a named variable. A getter exposes a single value output; a setter
// threads execution through and exposes the assigned value.
func (r *Registry) RegisterVariable(name string, typ PinType, container ContainerKind, def any) {
	r.Register(&Template{
		Key:      "Get_" + name,
		Title:    "Get " + name,
		Category: "Variables",
		Pins: []PinSpec{
			{ID: "val_out", Name: name, Type: typ, Dir: PinOut, Container: container, Default: def},
		},
	})
	r.Register(&Template{
		Key:      "Set_" + name,
		Title:    "Set " + name,
		Category: "Variables",
		Pins: []PinSpec{
			{ID: "exec_in", Name: "Exec", Type: PinExec, Dir: PinIn},
			{ID: "val_in", Name: name, Type: typ, Dir: PinIn, Container: container, Default: def},
			{ID: "exec_out", Name: "Exec", Type: PinExec, Dir: PinOut},
			{ID: "val_out", Name: name, Type: typ, Dir: PinOut, Container: container},
		},
	})
}

// UnregisterVariable removes a variable's accessor templates.
func (r *Registry) UnregisterVariable(name string) {
	r.Unregister("Get_" + name)
	r.Unregister("Set_" + name)
}

// catalogFile is the on-disk JSON shape consumed by LoadCatalog.
type catalogFile struct {
	Templates   []*Template `json:"templates"`
	Conversions []struct {
		From PinType `json:"from"`
		To   PinType `json:"to"`
		Key  string  `json:"key"`
	} `json:"conversions"`
}

// LoadCatalog parses a JSON template catalog and returns a populated
// Registry. Conversion entries must reference a template declared in the
// same file.
func LoadCatalog(jsonData []byte) (*Registry, error) {
	var file catalogFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("wisteria: parse catalog: %w", err)
	}
	r := NewRegistry()
	for _, t := range file.Templates {
		if t.Key == "" {
			return nil, fmt.Errorf("wisteria: catalog template missing key (title %q)", t.Title)
		}
		r.Register(t)
	}
	for _, c := range file.Conversions {
		if _, ok := r.Get(c.Key); !ok {
			return nil, fmt.Errorf("wisteria: conversion %s->%s references unknown template %q", c.From, c.To, c.Key)
		}
		r.RegisterConversion(c.From, c.To, c.Key)
	}
	return r, nil
}
