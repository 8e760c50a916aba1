package manifest

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// AnyConstraint marks a declaration that carries no usable version
// constraint. Pub also accepts it as a literal constraint value.
const AnyConstraint = "any"

// sdkPackages are provided by the Flutter SDK itself and never resolve
// against the pub registry.
var sdkPackages = map[string]struct{}{
	"flutter":               {},
	"flutter_test":          {},
	"flutter_localizations": {},
	"flutter_driver":        {},
}

// Pubspec is the decoded manifest. Dependency maps keep declaration
// order, which the report preserves.
type Pubspec struct {
	Name            string        `yaml:"name"`
	Dependencies    yaml.MapSlice `yaml:"dependencies"`
	DevDependencies yaml.MapSlice `yaml:"dev_dependencies"`
}

// Dependency is one declared package dependency.
type Dependency struct {
	Name       string
	Constraint string
}

// Parse decodes a pubspec.yaml document. Empty documents are rejected,
// a valid document without dependency sections is not.
func Parse(content []byte) (*Pubspec, error) {
	if strings.TrimSpace(string(content)) == "" {
		return nil, fmt.Errorf("manifest is empty")
	}

	var pubspec Pubspec
	if err := yaml.Unmarshal(content, &pubspec); err != nil {
		return nil, fmt.Errorf("parsing pubspec: %w", err)
	}

	return &pubspec, nil
}

// Dependencies lists the declared dependencies in order of first
// appearance, primary section first, dev_dependencies appended when
// includeDev is set. SDK-provided packages are skipped. A name declared
// twice keeps its first position but the later constraint wins.
func Dependencies(pubspec *Pubspec, includeDev bool) []Dependency {
	if pubspec == nil {
		return nil
	}

	entries := pubspec.Dependencies
	if includeDev {
		entries = append(append(yaml.MapSlice{}, pubspec.Dependencies...), pubspec.DevDependencies...)
	}

	deps := make([]Dependency, 0, len(entries))
	position := make(map[string]int, len(entries))
	for _, entry := range entries {
		name, ok := entry.Key.(string)
		if !ok {
			continue
		}
		if _, sdk := sdkPackages[name]; sdk {
			continue
		}

		constraint := constraintOf(entry.Value)
		if at, seen := position[name]; seen {
			deps[at].Constraint = constraint
			continue
		}
		position[name] = len(deps)
		deps = append(deps, Dependency{Name: name, Constraint: constraint})
	}

	return deps
}

// constraintOf flattens the declaration shapes pub allows: a bare
// constraint string, or a mapping whose version field may be absent
// (git, path and sdk dependencies). Anything else has no constraint.
func constraintOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if version, ok := v["version"].(string); ok && version != "" {
			return version
		}
		return AnyConstraint
	case yaml.MapSlice:
		for _, entry := range v {
			if key, ok := entry.Key.(string); ok && key == "version" {
				if version, ok := entry.Value.(string); ok && version != "" {
					return version
				}
			}
		}
		return AnyConstraint
	default:
		return AnyConstraint
	}
}

// Resolvable reports whether a constraint can be compared against the
// registry. The catch-all any and source-control, local-path and sdk
// declarations have no registry counterpart.
func Resolvable(constraint string) bool {
	if constraint == "" || constraint == AnyConstraint {
		return false
	}
	for _, marker := range []string{"sdk:", "git:", "path:"} {
		if strings.Contains(constraint, marker) {
			return false
		}
	}
	return true
}
