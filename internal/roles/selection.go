package roles

import (
	"errors"
	"fmt"
)

var ErrRoleNotAssigned = errors.New("role is not assigned to this user")

// Selection is a principal's assigned roles together with the one it is
// currently acting as. The active role is always a member of Assigned.
type Selection struct {
	assigned []Role
	active   Role
}

// NewSelection builds a Selection from stored values. A stored active role
// that is not assigned is replaced by the first assigned role; an empty set
// collapses to DefaultRole.
func NewSelection(assigned []Role, active Role) Selection {
	seen := make(map[Role]struct{}, len(assigned))
	uniq := make([]Role, 0, len(assigned))
	for _, r := range assigned {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		uniq = append(uniq, r)
	}

	if len(uniq) == 0 {
		return Selection{assigned: []Role{DefaultRole}, active: DefaultRole}
	}

	if _, ok := seen[active]; !ok || len(uniq) == 1 {
		active = uniq[0]
	}

	return Selection{assigned: uniq, active: active}
}

func (s Selection) Active() Role {
	if s.active == "" {
		return DefaultRole
	}
	return s.active
}

func (s Selection) Assigned() []Role {
	if len(s.assigned) == 0 {
		return []Role{DefaultRole}
	}
	out := make([]Role, len(s.assigned))
	copy(out, s.assigned)
	return out
}

// Switchable reports whether a role menu should be offered.
func (s Selection) Switchable() bool {
	return len(s.assigned) > 1
}

func (s Selection) Has(r Role) bool {
	for _, a := range s.assigned {
		if a == r {
			return true
		}
	}
	return false
}

// Switch returns a copy of s acting as target.
func (s Selection) Switch(target Role) (Selection, error) {
	if !s.Has(target) {
		return s, fmt.Errorf("%w: %q", ErrRoleNotAssigned, target)
	}
	s.active = target
	return s, nil
}

// View is the serialisable form used by the API and the dashboard.
type View struct {
	Active     Descriptor   `json:"active"`
	Assigned   []Descriptor `json:"assigned"`
	Switchable bool         `json:"switchable"`
}

func (s Selection) View() View {
	assigned := s.Assigned()
	v := View{
		Active:     Lookup(string(s.Active())),
		Assigned:   make([]Descriptor, 0, len(assigned)),
		Switchable: s.Switchable(),
	}
	for _, r := range assigned {
		v.Assigned = append(v.Assigned, Lookup(string(r)))
	}
	return v
}

// FromStrings converts raw identifiers as stored in the database.
func FromStrings(in []string) []Role {
	out := make([]Role, 0, len(in))
	for _, s := range in {
		out = append(out, Role(s))
	}
	return out
}

func ToStrings(in []Role) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		out = append(out, string(r))
	}
	return out
}
