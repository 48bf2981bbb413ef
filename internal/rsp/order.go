package rsp

import (
	"errors"
	"fmt"
	"strings"
)

// Group names one block of the rewritten response file.
type Group string

const (
	GroupSearchPaths Group = "search-paths"
	GroupPrefixLibs  Group = "prefix-libs"
	GroupArchives    Group = "archives"
	GroupImportLibs  Group = "import-libs"
	GroupOtherLibs   Group = "other-libs"
)

var (
	// ErrUnknownGroup is returned when a group name is not recognized.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrEmptyOrder is returned when an order lists no groups.
	ErrEmptyOrder = errors.New("order lists no groups")
)

// Groups lists every known group in default emission order.
func Groups() []Group {
	return []Group{
		GroupSearchPaths,
		GroupPrefixLibs,
		GroupArchives,
		GroupImportLibs,
		GroupOtherLibs,
	}
}

// Order is the sequence in which groups are written. A group may appear more
// than once; each appearance writes the whole group again.
type Order []Group

// DefaultOrder is search paths, prefix libraries, quoted archives, quoted
// import libraries, then every other library reference.
func DefaultOrder() Order {
	return Order(Groups())
}

// ParseGroup validates a single group name.
func ParseGroup(s string) (Group, error) {
	g := Group(strings.TrimSpace(s))
	for _, known := range Groups() {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownGroup, s, Order(Groups()))
}

// ParseOrder parses a comma-separated list of group names.
func ParseOrder(s string) (Order, error) {
	var order Order
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		g, err := ParseGroup(field)
		if err != nil {
			return nil, err
		}
		order = append(order, g)
	}
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}
	return order, nil
}

// String joins the group names with commas, the form ParseOrder accepts.
func (o Order) String() string {
	names := make([]string, len(o))
	for i, g := range o {
		names[i] = string(g)
	}
	return strings.Join(names, ",")
}
