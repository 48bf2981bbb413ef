package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sigrok-cross/cleanlinkrsp/internal/rsp"
	"go.yaml.in/yaml/v3"
)

// DefaultVersion is assumed when a layout file does not declare one.
const DefaultVersion = "1.0.0"

// SupportedVersions is the semver constraint a layout version must satisfy.
const SupportedVersions = "^1"

// Layout is a parsed layout file.
type Layout struct {
	Version     string   `yaml:"version,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Groups      []string `yaml:"groups"`
}

// Default returns the layout matching rsp.DefaultOrder.
func Default() *Layout {
	order := rsp.DefaultOrder()
	groups := make([]string, len(order))
	for i, g := range order {
		groups[i] = string(g)
	}
	return &Layout{Version: DefaultVersion, Groups: groups}
}

// Parse validates raw YAML against the layout schema, checks the format
// version and decodes it.
func Parse(data []byte) (*Layout, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if l.Version == "" {
		l.Version = DefaultVersion
	}
	if err := checkVersion(l.Version); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile reads and parses a layout file.
func LoadFile(path string) (*Layout, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Order converts the layout's group names into an emission order.
func (l *Layout) Order() (rsp.Order, error) {
	if len(l.Groups) == 0 {
		return nil, rsp.ErrEmptyOrder
	}
	order := make(rsp.Order, 0, len(l.Groups))
	for _, name := range l.Groups {
		g, err := rsp.ParseGroup(name)
		if err != nil {
			return nil, err
		}
		order = append(order, g)
	}
	return order, nil
}

// Marshal encodes the layout as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling layout: %w", err)
	}
	return data, nil
}

// checkVersion rejects layout versions outside SupportedVersions.
func checkVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing layout version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("layout version %s is not supported (want %s)", version, SupportedVersions)
	}
	return nil
}

// InvalidError reports schema violations found in a layout file.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return "invalid layout: " + strings.Join(parts, "; ")
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
