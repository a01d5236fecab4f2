package lang

import (
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

var registry struct {
	sync.RWMutex
	languages []*Language
	byAlias   map[string]*Language
}

// Register adds a language to the registry
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	if registry.byAlias == nil {
		registry.byAlias = make(map[string]*Language)
	}
	registry.languages = append(registry.languages, lang)

	for _, alias := range lang.Aliases {
		key := strings.ToLower(alias)
		if existing, ok := registry.byAlias[key]; ok {
			logger.Warnf("Alias %s already registered to %s, overriding with %s", key, existing.Name, lang.Name)
		}
		registry.byAlias[key] = lang
	}

	logger.DebugTagf("highlight", "Registered language: %s with aliases: %v", lang.Name, lang.Aliases)
}

// Lookup returns the language for a code block tag, or nil. Matching
// ignores case and surrounding space.
func Lookup(tag string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.byAlias[strings.ToLower(strings.TrimSpace(tag))]
}

// GetAll returns all registered languages
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
