package forms

import (
	"fmt"
	"sync"
)

// State holds the values and per-field validation errors for one form
// instance. Each form submission owns its own State; nothing is shared
// across requests.
type State struct {
	mu     sync.Mutex
	fields map[string]Field
	order  []string
	values map[string]any
	errors map[string]string
}

// NewState builds a state container for the given field declarations.
func NewState(fields []Field) *State {
	st := &State{
		fields: make(map[string]Field, len(fields)),
		order:  make([]string, 0, len(fields)),
		values: make(map[string]any),
		errors: make(map[string]string),
	}
	for _, f := range fields {
		if _, dup := st.fields[f.Name]; dup {
			continue
		}
		st.fields[f.Name] = f
		st.order = append(st.order, f.Name)
	}
	return st
}

// Set writes a value into the named slot and validates that field only.
// Writing to a name with no declared field stores the value unvalidated.
func (s *State) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value

	f, ok := s.fields[name]
	if !ok {
		return nil
	}

	if err := validateField(f, value); err != nil {
		s.errors[name] = err.Error()
		return err
	}
	delete(s.errors, name)
	return nil
}

// Get returns the current value and validation error for a slot.
func (s *State) Get(name string) (any, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name], s.errors[name]
}

// Values returns a snapshot of all written values.
func (s *State) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validate runs every declared field's validation against the current
// values, the combined check performed at submission time. It returns a map
// of field name to message for every failing field, or nil when the form is
// valid. Per-field errors recorded by Set are replaced by this pass.
func (s *State) Validate() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	failed := make(map[string]string)
	for _, name := range s.order {
		f := s.fields[name]
		if err := validateField(f, s.values[name]); err != nil {
			failed[name] = err.Error()
			s.errors[name] = err.Error()
		} else {
			delete(s.errors, name)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failed
}

// String returns the value of a slot as a string, or "" when unset or not a
// string.
func (s *State) String(name string) string {
	v, _ := s.Get(name)
	str, _ := v.(string)
	return str
}

// Bool returns the value of a slot as a bool; unset or non-bool is false.
func (s *State) Bool(name string) bool {
	v, _ := s.Get(name)
	b, _ := v.(bool)
	return b
}

func validateField(f Field, value any) error {
	if isEmptyValue(value) {
		if f.Required {
			return fmt.Errorf("%s is required", f.Name)
		}
		return nil
	}
	if f.Validate != nil {
		return f.Validate(value)
	}
	return nil
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
