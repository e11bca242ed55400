package convert

import (
	"fmt"
	"strconv"

	"github.com/limaJavier/goalcnf/pkg/sat"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Result is the outcome of a successful conversion
type Result struct {
	SAT     sat.SAT
	Atoms   []string // Atom of each variable, where the atom of variable v is found at index v-1
	Renamed []Renaming
}

func (result *Result) DIMACS() string {
	return result.SAT.ToDIMACS()
}

// SymbolMap relates the emitted variables to the atoms of the goal and the caller-named atoms to the
// internal atoms they were renamed into
type SymbolMap struct {
	Variables map[string]string `json:"variables"`
	Named     map[string]string `json:"named"`
}

func (result *Result) SymbolMap() SymbolMap {
	variables := make(map[string]string, len(result.Atoms))
	for i, atom := range result.Atoms {
		variables[strconv.Itoa(i+1)] = atom
	}
	named := lo.Associate(
		lo.Filter(result.Renamed, func(renaming Renaming, _ int) bool { return renaming.Found }),
		func(renaming Renaming) (string, string) { return renaming.Name, renaming.Atom },
	)
	return SymbolMap{Variables: variables, Named: named}
}

// Converter turns goal text into DIMACS-CNF. It holds no state between conversions, so a single Converter
// may be shared by concurrent callers
type Converter struct {
	options Options
	logger  *zap.Logger
}

func NewConverter(options Options, logger *zap.Logger) (*Converter, error) {
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{options: options, logger: logger}, nil
}

// Convert runs the whole pipeline over input, renaming the named atoms in the given order. Either a complete
// result or an error is returned, never a partial instance
func (converter *Converter) Convert(input string, named []string) (*Result, error) {
	options := converter.options

	//** Load
	lines, err := Load(input, options)
	if err != nil {
		return nil, err
	}
	converter.logger.Debug("goal loaded", zap.Int("lines", len(lines)))

	//** Rename
	lines, renamings, err := Rename(lines, named, options)
	if err != nil {
		return nil, err
	}
	for _, renaming := range renamings {
		if !renaming.Found {
			converter.logger.Debug("named atom not found, its number is consumed anyway",
				zap.String("name", renaming.Name), zap.String("atom", renaming.Atom))
		}
	}
	converter.logger.Debug("named atoms renamed", zap.Int("named", len(renamings)))

	//** Reassemble
	lines, err = Reassemble(lines, options)
	if err != nil {
		return nil, err
	}
	converter.logger.Debug("clauses reassembled", zap.Int("logicalLines", len(lines)))

	//** Parse
	registry := NewRegistry()
	instance, err := Parse(lines, registry, options)
	if err != nil {
		return nil, err
	}
	converter.logger.Debug("goal converted",
		zap.Uint64("variables", instance.Variables), zap.Int("clauses", len(instance.Clauses)))

	return &Result{
		SAT:     instance,
		Atoms:   registry.Atoms(),
		Renamed: renamings,
	}, nil
}
