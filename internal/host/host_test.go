package host

import "testing"

type widget struct {
	Name  string
	Count int
	tags  map[string]string // unexported, must stay invisible
}

func (w *widget) Greet(prefix string) string { return prefix + w.Name }

func (w *widget) Sum(nums ...int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}

func TestAccessStructField(t *testing.T) {
	w := &widget{Name: "gizmo", Count: 3}
	v, ok := Access(w, "Name")
	if !ok || v != "gizmo" {
		t.Fatalf("Access(Name) = %v, %v; want gizmo, true", v, ok)
	}
}

func TestAccessMissingFieldReturnsFalse(t *testing.T) {
	w := &widget{}
	if _, ok := Access(w, "Nonexistent"); ok {
		t.Fatal("expected ok=false for a missing field")
	}
}

func TestAccessMethodReturnsBoundMethod(t *testing.T) {
	w := &widget{Name: "gizmo"}
	v, ok := Access(w, "Greet")
	if !ok {
		t.Fatal("expected Access to find the Greet method")
	}
	m, ok := v.(*Method)
	if !ok {
		t.Fatalf("expected *Method, got %T", v)
	}
	result, err := m.Call([]interface{}{"hello, "})
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if result != "hello, gizmo" {
		t.Fatalf("got %v, want %q", result, "hello, gizmo")
	}
}

func TestMethodCallVariadic(t *testing.T) {
	w := &widget{}
	v, _ := Access(w, "Sum")
	m := v.(*Method)
	result, err := m.Call([]interface{}{1, 2, 3})
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if result != 6 {
		t.Fatalf("got %v, want 6", result)
	}
}

func TestSetStructField(t *testing.T) {
	w := &widget{Name: "gizmo"}
	if !Set(w, "Name", "sprocket") {
		t.Fatal("Set returned false")
	}
	if w.Name != "sprocket" {
		t.Fatalf("field not updated, got %q", w.Name)
	}
}

func TestSetUnknownFieldReturnsFalse(t *testing.T) {
	w := &widget{}
	if Set(w, "Nonexistent", "x") {
		t.Fatal("expected Set to fail for an unknown field")
	}
}

func TestKeysListsExportedFieldsOnly(t *testing.T) {
	w := &widget{Name: "gizmo", Count: 1}
	keys := Keys(w)
	found := map[string]bool{}
	for _, k := range keys {
		found[k] = true
	}
	if !found["Name"] || !found["Count"] {
		t.Fatalf("Keys() = %v, want Name and Count present", keys)
	}
	if found["tags"] {
		t.Fatalf("Keys() leaked unexported field: %v", keys)
	}
}

func TestKeysOnMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	keys := Keys(m)
	if len(keys) != 2 {
		t.Fatalf("Keys(map) = %v, want 2 entries", keys)
	}
}

func TestDeleteMapEntry(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	if !Delete(m, "a") {
		t.Fatal("Delete returned false")
	}
	if _, ok := m["a"]; ok {
		t.Fatal("entry not removed")
	}
}

func TestDeleteStructFieldReturnsFalse(t *testing.T) {
	w := &widget{Name: "gizmo"}
	if Delete(w, "Name") {
		t.Fatal("expected Delete on a struct field to report false")
	}
}
