// Package physician holds the clinic's physician roster. The roster is a
// static reference table keyed by stable identifiers; appointments store the
// physician id, never the display name.
package physician

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when no physician matches the given id.
var ErrNotFound = errors.New("physician not found")

// Physician is one entry in the clinic roster.
type Physician struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Registry resolves physician ids to display metadata.
type Registry struct {
	byID  map[string]Physician
	order []string
}

// NewRegistry builds a registry from the given roster. Duplicate ids keep
// the first entry.
func NewRegistry(roster []Physician) *Registry {
	r := &Registry{byID: make(map[string]Physician, len(roster))}
	for _, p := range roster {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// DefaultRegistry returns the clinic's built-in roster.
func DefaultRegistry() *Registry {
	names := []string{
		"John Green",
		"Leila Cameron",
		"David Livingston",
		"Evan Peter",
		"Jane Powell",
		"Alex Ramirez",
		"Jasmine Lee",
		"Alyana Cruz",
		"Hardik Sharma",
	}
	roster := make([]Physician, 0, len(names))
	for _, n := range names {
		slug := strings.ToLower(strings.ReplaceAll(n, " ", "-"))
		roster = append(roster, Physician{
			ID:       "dr-" + slug,
			Name:     "Dr. " + n,
			ImageURL: fmt.Sprintf("/assets/images/dr-%s.png", slug),
		})
	}
	return NewRegistry(roster)
}

// Get resolves a physician by id. An unknown id is a reportable error, not a
// silently missing entry.
func (r *Registry) Get(id string) (Physician, error) {
	p, ok := r.byID[id]
	if !ok {
		return Physician{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// List returns the roster in registration order.
func (r *Registry) List() []Physician {
	out := make([]Physician, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ListSorted returns the roster ordered by display name.
func (r *Registry) ListSorted() []Physician {
	out := r.List()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
