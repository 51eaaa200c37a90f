// Package forms implements the dynamic form machinery shared by the intake,
// registration, and appointment flows: a closed set of field types, a
// renderer that maps each type to its input widget, and a per-form state
// container that validates values as they are written.
package forms

// FieldType identifies which input widget a field renders as. The set is
// closed; composite widgets (radio groups, file drop zones) go through
// FieldSkeleton with a caller-supplied render function.
type FieldType string

const (
	FieldInput      FieldType = "input"
	FieldTextarea   FieldType = "textarea"
	FieldPhoneInput FieldType = "phone-input"
	FieldCheckbox   FieldType = "checkbox"
	FieldDatePicker FieldType = "date-picker"
	FieldSelect     FieldType = "select"
	FieldSkeleton   FieldType = "skeleton"
)

// Option is a single choice in a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SkeletonFunc renders a skeleton field from its current state. It receives
// the current value and validation error for the field and returns whatever
// widget the caller wants in its place, or nil to render nothing.
type SkeletonFunc func(value any, fieldErr string) *Widget

// Field declares one entry in a form: its slot name, how it renders, and how
// its value is validated on every write.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Type        FieldType
	Options     []Option
	Required    bool

	// Validate checks a single written value. A nil Validate accepts
	// everything except a missing required value.
	Validate func(value any) error

	// Render is consulted only for FieldSkeleton.
	Render SkeletonFunc
}

// WidgetKind is the concrete input element a field resolved to.
type WidgetKind string

const (
	WidgetTextInput  WidgetKind = "text-input"
	WidgetTextarea   WidgetKind = "textarea"
	WidgetPhoneInput WidgetKind = "phone-input"
	WidgetCheckbox   WidgetKind = "checkbox"
	WidgetDatePicker WidgetKind = "date-picker"
	WidgetSelect     WidgetKind = "select"
	WidgetCustom     WidgetKind = "custom"
)

// Widget is a rendered, value-bound input element.
type Widget struct {
	Kind        WidgetKind `json:"kind"`
	Name        string     `json:"name"`
	Label       string     `json:"label,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	Required    bool       `json:"required,omitempty"`
	Value       any        `json:"value,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// RenderField resolves a field declaration into its widget, bound to the
// current value and validation error held in st. Each known field type maps
// to exactly one widget kind; FieldSkeleton delegates to the field's Render
// function. An unrecognized type renders nothing and reports false.
func RenderField(f Field, st *State) (*Widget, bool) {
	value, fieldErr := st.Get(f.Name)

	switch f.Type {
	case FieldInput:
		return f.widget(WidgetTextInput, value, fieldErr), true
	case FieldTextarea:
		return f.widget(WidgetTextarea, value, fieldErr), true
	case FieldPhoneInput:
		return f.widget(WidgetPhoneInput, value, fieldErr), true
	case FieldCheckbox:
		return f.widget(WidgetCheckbox, value, fieldErr), true
	case FieldDatePicker:
		return f.widget(WidgetDatePicker, value, fieldErr), true
	case FieldSelect:
		return f.widget(WidgetSelect, value, fieldErr), true
	case FieldSkeleton:
		if f.Render == nil {
			return nil, false
		}
		w := f.Render(value, fieldErr)
		if w == nil {
			return nil, false
		}
		if w.Kind == "" {
			w.Kind = WidgetCustom
		}
		if w.Name == "" {
			w.Name = f.Name
		}
		return w, true
	default:
		return nil, false
	}
}

func (f Field) widget(kind WidgetKind, value any, fieldErr string) *Widget {
	return &Widget{
		Kind:        kind,
		Name:        f.Name,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Options:     f.Options,
		Required:    f.Required,
		Value:       value,
		Error:       fieldErr,
	}
}

// Render renders every field of a form in declaration order, skipping fields
// that resolve to nothing.
func Render(fields []Field, st *State) []*Widget {
	widgets := make([]*Widget, 0, len(fields))
	for _, f := range fields {
		w, ok := RenderField(f, st)
		if !ok {
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets
}
