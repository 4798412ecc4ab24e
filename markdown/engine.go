package markdown

import (
	"errors"
	"fmt"
	"sort"
)

// Engine parses source text into a RawDocument block. Engines recognize only
// core syntax plus whatever Grammar was registered when they were built.
type Engine interface {
	Name() string
	Parse(source []byte) RawBlock
}

// Names of the available engines.
const (
	EngineGoldmark    = "goldmark"
	EngineBlackfriday = "blackfriday"
)

// ErrUnknownEngine is returned when asked for an engine by an unknown name.
var ErrUnknownEngine = errors.New("unknown markdown engine")

var engines = map[string]func(grammars []Grammar) Engine{
	EngineGoldmark:    newGoldmarkEngine,
	EngineBlackfriday: newBlackfridayEngine,
}

// NewEngine builds the named engine with every given grammar enabled.
// An empty name selects goldmark.
func NewEngine(name string, grammars []Grammar) (Engine, error) {
	if name == "" {
		name = EngineGoldmark
	}
	build, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q; available: %v", ErrUnknownEngine, name, EngineNames())
	}
	return build(grammars), nil
}

// EngineNames returns the sorted names accepted by NewEngine.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
