package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Options describes the concrete syntax of the goal text being converted
type Options struct {
	AtomPrefix  string `mapstructure:"atomPrefix"`  // Prefix of solver-generated atoms, followed by a decimal suffix
	Indent      int    `mapstructure:"indent"`      // Width of the indentation prefix removed from every body line
	GoalMarker  string `mapstructure:"goalMarker"`  // Optional token opening the wrapped goal
	Disjunction string `mapstructure:"disjunction"` // Disjunction keyword
	Negation    string `mapstructure:"negation"`    // Negation keyword
}

func DefaultOptions() Options {
	return Options{
		AtomPrefix:  "k!",
		Indent:      2,
		GoalMarker:  "(goal",
		Disjunction: "or",
		Negation:    "not",
	}
}

// LoadOptions reads a JSON or YAML configuration file and overlays it on the default options
func LoadOptions(path string) (Options, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = json.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Options{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	options := DefaultOptions()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &options,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, fmt.Errorf("invalid config file %v: %w", path, err)
	}

	if err := options.Validate(); err != nil {
		return Options{}, err
	}
	return options, nil
}

// Validate makes sure the options describe an unambiguous syntax
func (options Options) Validate() error {
	switch {
	case options.AtomPrefix == "":
		return fmt.Errorf("atom prefix cannot be empty")
	case strings.ContainsAny(options.AtomPrefix, "() \t|"):
		return fmt.Errorf("atom prefix %q cannot contain delimiters", options.AtomPrefix)
	case options.Indent < 0:
		return fmt.Errorf("indent must be non-negative: %v", options.Indent)
	case options.Disjunction == "" || options.Negation == "":
		return fmt.Errorf("disjunction and negation keywords cannot be empty")
	case options.Disjunction == options.Negation:
		return fmt.Errorf("disjunction and negation keywords must differ: %q", options.Disjunction)
	}
	return nil
}
