package aggregation

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/timegrid"
	"gopkg.in/yaml.v3"
)

// rawRecipe is the on-disk YAML shape of a unit-scaling recipe:
//
//	name: energy_sum_mwh
//	source_unit: Wh
//	target_unit: MWh
//	option: sum
//	scale: 0.000001
//	combinator: sum
//	cross: sum
//	default: true
type rawRecipe struct {
	Name               string   `yaml:"name"`
	SourceUnit         string   `yaml:"source_unit"`
	TargetUnit         string   `yaml:"target_unit"`
	Option             string   `yaml:"option"`
	Scale              float64  `yaml:"scale"`
	Combinator         string   `yaml:"combinator"`
	Cross              string   `yaml:"cross"`
	Default            bool     `yaml:"default"`
	AllowedResolutions []string `yaml:"allowed_resolutions"`
}

// LoadRecipeFiles reads every *.yaml / *.yml file in dir, one recipe per
// file. A missing directory yields no recipes. Recipes are fingerprinted
// with the SHA-256 of their file; duplicate names are rejected.
func LoadRecipeFiles(dir string) ([]Params, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recipe dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("recipe path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading recipe dir: %w", err)
	}

	seen := make(map[string]string)
	var out []Params
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading recipe file %s: %w", path, err)
		}

		var raw rawRecipe
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing recipe file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // empty or comment-only file
		}
		if prev, dup := seen[raw.Name]; dup {
			return nil, fmt.Errorf("recipe %q: duplicate name in %s and %s", raw.Name, prev, path)
		}
		seen[raw.Name] = path

		p, err := raw.params()
		if err != nil {
			return nil, err
		}
		p.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (raw *rawRecipe) params() (Params, error) {
	per, ok := Combinators[raw.Combinator]
	if !ok {
		return Params{}, fmt.Errorf("recipe %q: unsupported combinator %q", raw.Name, raw.Combinator)
	}
	if raw.Scale < 0 {
		return Params{}, fmt.Errorf("recipe %q: scale must not be negative", raw.Name)
	}

	p := Params{
		Name:       raw.Name,
		SourceUnit: resource.Unit(raw.SourceUnit),
		TargetUnit: resource.Unit(raw.TargetUnit),
		Option:     Option(raw.Option),
		Default:    raw.Default,
		Scale:      raw.Scale,
		PerBucket:  per,
		Cross:      raw.Cross,
	}
	if p.Cross == "" {
		p.Cross = OpSum
	}
	for _, s := range raw.AllowedResolutions {
		r, err := timegrid.ParseResolution(s)
		if err != nil {
			return Params{}, fmt.Errorf("recipe %q: %w", raw.Name, err)
		}
		p.AllowedResolutions = append(p.AllowedResolutions, r)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
