// Package locators resolves named element locators from per-component JSON
// definition files.
//
// Each component owns one file, <identifiers dir>/<component>.json, mapping
// locator names to either a plain selector string or an object with "type"
// and "value" fields rendered as "type=value". Files are parsed lazily and
// cached; the cache only ever grows until Reset drops it wholesale.
package locators

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/entrhq/waypoint/pkg/logging"
)

// Store loads and caches locator definitions for one identifiers directory.
// Safe for concurrent use.
type Store struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]gjson.Result
	log   *logging.Logger
}

// NewStore creates a store over the given identifiers directory. The
// directory is not touched until the first lookup.
func NewStore(dir string) *Store {
	log, _ := logging.NewLogger("locators")
	return &Store{
		dir:   dir,
		cache: make(map[string]gjson.Result),
		log:   log,
	}
}

// Locator returns the selector registered under name in the component's
// definition file. Object entries are rendered as "type=value"; string
// entries are returned as-is.
func (s *Store) Locator(component, name string) (string, error) {
	doc, err := s.component(component)
	if err != nil {
		return "", err
	}

	entry := doc.Get(name)
	if !entry.Exists() {
		return "", fmt.Errorf("locator %q not defined for component %q", name, component)
	}
	return renderEntry(entry)
}

// All returns every locator the component defines, rendered.
func (s *Store) All(component string) (map[string]string, error) {
	doc, err := s.component(component)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	var walkErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		rendered, err := renderEntry(value)
		if err != nil {
			walkErr = fmt.Errorf("component %q: %w", component, err)
			return false
		}
		out[key.String()] = rendered
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// Resolve treats ref as a "component.name" reference when it parses as one
// and the lookup succeeds; anything else is passed through as a raw selector.
func (s *Store) Resolve(ref string) string {
	component, name, ok := strings.Cut(ref, ".")
	if !ok || component == "" || name == "" || strings.Contains(name, ".") {
		return ref
	}

	selector, err := s.Locator(component, name)
	if err != nil {
		s.log.Debugf("Treating %q as a raw selector: %v", ref, err)
		return ref
	}
	return selector
}

// Reset drops the entire cache. Subsequent lookups re-read the files.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]gjson.Result)
}

func (s *Store) component(component string) (gjson.Result, error) {
	s.mu.RLock()
	doc, ok := s.cache[component]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.cache[component]; ok {
		return doc, nil
	}

	path := filepath.Join(s.dir, component+".json")
	data, err := os.ReadFile(path) //#nosec G304 -- path is built from the configured identifiers dir
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read locator file for component %q: %w", component, err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("locator file %s is not valid JSON", path)
	}

	doc = gjson.ParseBytes(data)
	s.log.Debugf("Loaded %d locators for component %s", len(doc.Map()), component)
	s.cache[component] = doc
	return doc, nil
}

func renderEntry(entry gjson.Result) (string, error) {
	if entry.IsObject() {
		locType := entry.Get("type")
		locValue := entry.Get("value")
		if !locType.Exists() || !locValue.Exists() {
			return "", fmt.Errorf("locator object must carry type and value, got %s", entry.Raw)
		}
		return fmt.Sprintf("%s=%s", locType.String(), locValue.String()), nil
	}
	if entry.Type == gjson.String {
		return entry.String(), nil
	}
	return "", fmt.Errorf("locator entry must be a string or an object, got %s", entry.Raw)
}
