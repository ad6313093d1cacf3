// Package view renders feed data for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
)

// Filter restricts the feed table by hazard flag.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterHazardous Filter = "hazardous"
	FilterSafe      Filter = "safe"
)

// ParseFilter validates s. The empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterHazardous, FilterSafe:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q: want all, hazardous or safe", s)
	}
}

// Apply returns the objects matching filter whose name contains search,
// case-insensitively. Order is preserved.
func Apply(objs []neo.Object, filter Filter, search string) []neo.Object {
	needle := strings.ToLower(search)
	out := make([]neo.Object, 0, len(objs))
	for _, o := range objs {
		if filter == FilterHazardous && !o.Hazardous {
			continue
		}
		if filter == FilterSafe && o.Hazardous {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(o.Name), needle) {
			continue
		}
		out = append(out, o)
	}
	return out
}
