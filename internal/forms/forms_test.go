package forms

import (
	"strings"
	"testing"
)

func TestRenderFieldKnownTypes(t *testing.T) {
	cases := []struct {
		fieldType FieldType
		want      WidgetKind
	}{
		{FieldInput, WidgetTextInput},
		{FieldTextarea, WidgetTextarea},
		{FieldPhoneInput, WidgetPhoneInput},
		{FieldCheckbox, WidgetCheckbox},
		{FieldDatePicker, WidgetDatePicker},
		{FieldSelect, WidgetSelect},
	}

	for _, tc := range cases {
		f := Field{Name: "f", Type: tc.fieldType}
		st := NewState([]Field{f})

		w, ok := RenderField(f, st)
		if !ok {
			t.Errorf("%s: expected a widget", tc.fieldType)
			continue
		}
		if w.Kind != tc.want {
			t.Errorf("%s: kind = %s, want %s", tc.fieldType, w.Kind, tc.want)
		}
	}
}

func TestRenderFieldUnknownTypeIsNoop(t *testing.T) {
	f := Field{Name: "mystery", Type: FieldType("hologram")}
	st := NewState([]Field{f})

	w, ok := RenderField(f, st)
	if ok || w != nil {
		t.Errorf("unknown type: got widget %+v, ok=%v", w, ok)
	}
}

func TestRenderFieldSkeletonDelegates(t *testing.T) {
	var gotValue any
	var gotErr string

	f := Field{
		Name: "identification_document",
		Type: FieldSkeleton,
		Render: func(value any, fieldErr string) *Widget {
			gotValue = value
			gotErr = fieldErr
			return &Widget{Label: "Scanned copy of identification document"}
		},
	}
	st := NewState([]Field{f})
	_ = st.Set("identification_document", "doc-123")

	w, ok := RenderField(f, st)
	if !ok {
		t.Fatal("expected a widget")
	}
	if gotValue != "doc-123" || gotErr != "" {
		t.Errorf("callback got (%v, %q)", gotValue, gotErr)
	}
	if w.Kind != WidgetCustom {
		t.Errorf("kind = %s", w.Kind)
	}
	if w.Name != "identification_document" {
		t.Errorf("name = %q", w.Name)
	}
}

func TestRenderFieldSkeletonWithoutCallback(t *testing.T) {
	f := Field{Name: "x", Type: FieldSkeleton}
	st := NewState([]Field{f})

	if w, ok := RenderField(f, st); ok || w != nil {
		t.Errorf("skeleton without callback: got %+v, ok=%v", w, ok)
	}
}

func TestRenderSkipsUnrenderable(t *testing.T) {
	fields := []Field{
		{Name: "name", Type: FieldInput},
		{Name: "ghost", Type: FieldType("nope")},
		{Name: "phone", Type: FieldPhoneInput},
	}
	st := NewState(fields)

	widgets := Render(fields, st)
	if len(widgets) != 2 {
		t.Fatalf("len = %d", len(widgets))
	}
	if widgets[0].Name != "name" || widgets[1].Name != "phone" {
		t.Errorf("order: %s, %s", widgets[0].Name, widgets[1].Name)
	}
}

func TestStateSetValidatesSingleField(t *testing.T) {
	fields := []Field{
		{Name: "email", Type: FieldInput, Required: true, Validate: Email},
		{Name: "name", Type: FieldInput, Required: true},
	}
	st := NewState(fields)

	if err := st.Set("email", "not-an-email"); err == nil {
		t.Error("expected validation error")
	}
	// The failing write must not mark the untouched field.
	if _, fieldErr := st.Get("name"); fieldErr != "" {
		t.Errorf("name error = %q", fieldErr)
	}

	if err := st.Set("email", "jane@example.com"); err != nil {
		t.Errorf("valid value: %v", err)
	}
	if _, fieldErr := st.Get("email"); fieldErr != "" {
		t.Errorf("error not cleared: %q", fieldErr)
	}
}

func TestStateSetRequiredEmpty(t *testing.T) {
	st := NewState([]Field{{Name: "name", Type: FieldInput, Required: true}})

	if err := st.Set("name", ""); err == nil {
		t.Error("expected required error")
	}
	if err := st.Set("name", "Jane"); err != nil {
		t.Errorf("got %v", err)
	}
}

func TestStateValidateAll(t *testing.T) {
	fields := []Field{
		{Name: "name", Type: FieldInput, Required: true},
		{Name: "email", Type: FieldInput, Required: true, Validate: Email},
		{Name: "note", Type: FieldTextarea},
	}
	st := NewState(fields)
	_ = st.Set("email", "jane@example.com")

	failed := st.Validate()
	if len(failed) != 1 {
		t.Fatalf("failed = %v", failed)
	}
	if _, ok := failed["name"]; !ok {
		t.Errorf("expected name failure, got %v", failed)
	}

	_ = st.Set("name", "Jane")
	if failed := st.Validate(); failed != nil {
		t.Errorf("expected valid, got %v", failed)
	}
}

func TestStateAccessors(t *testing.T) {
	st := NewState([]Field{
		{Name: "name", Type: FieldInput},
		{Name: "consent", Type: FieldCheckbox},
	})
	_ = st.Set("name", "Jane")
	_ = st.Set("consent", true)

	if st.String("name") != "Jane" {
		t.Errorf("String = %q", st.String("name"))
	}
	if !st.Bool("consent") {
		t.Error("Bool = false")
	}
	if st.String("missing") != "" || st.Bool("missing") {
		t.Error("missing slot should be zero")
	}

	values := st.Values()
	if len(values) != 2 {
		t.Errorf("Values = %v", values)
	}
}

func TestValidators(t *testing.T) {
	if err := Phone("+15551234567"); err != nil {
		t.Errorf("Phone valid: %v", err)
	}
	if err := Phone("call me maybe"); err == nil {
		t.Error("Phone invalid accepted")
	}
	if err := Date("2024-05-01T10:00:00Z"); err != nil {
		t.Errorf("Date rfc3339: %v", err)
	}
	if err := Date("2024-05-01"); err != nil {
		t.Errorf("Date plain: %v", err)
	}
	if err := Date("yesterday"); err == nil {
		t.Error("Date invalid accepted")
	}
	if err := MustBeTrue(true); err != nil {
		t.Errorf("MustBeTrue: %v", err)
	}
	if err := MustBeTrue(false); err == nil {
		t.Error("MustBeTrue(false) accepted")
	}
	if err := OneOf("male", "female", "other")("female"); err != nil {
		t.Errorf("OneOf: %v", err)
	}
	if err := OneOf("male", "female", "other")("robot"); err == nil {
		t.Error("OneOf invalid accepted")
	}
	if err := MinLen(2)("a"); err == nil || !strings.Contains(err.Error(), "at least 2") {
		t.Errorf("MinLen: %v", err)
	}
}
