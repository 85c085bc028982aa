package evaluator

import (
	"testing"

	"github.com/jstrack/interp/internal/host"
)

func TestReadMemberJSObject(t *testing.T) {
	e := New(Undefined, nil)
	obj := NewJSObject()
	obj.Set("x", float64(1))
	if got := e.readMember(obj, "x"); got != float64(1) {
		t.Fatalf("got %v, want 1", got)
	}
	if got := e.readMember(obj, "missing"); got != Undefined {
		t.Fatalf("got %v, want Undefined", got)
	}
}

func TestReadMemberOnNullThrowsTypeError(t *testing.T) {
	e := New(Undefined, nil)
	defer func() {
		r := recover()
		exc, ok := r.(*Exception)
		if !ok {
			t.Fatalf("expected *Exception panic, got %v", r)
		}
		if _, ok := exc.Value.(*typeErrorValue); !ok {
			t.Fatalf("expected TypeError value, got %T", exc.Value)
		}
	}()
	e.readMember(Null, "x")
}

func TestArrayMemberReadWriteLength(t *testing.T) {
	e := New(Undefined, nil)
	arr := NewJSArray([]interface{}{float64(10), float64(20)})
	if got := e.readMember(arr, "length"); got != float64(2) {
		t.Fatalf("length = %v, want 2", got)
	}
	e.writeMember(arr, float64(5), float64(99))
	if len(arr.Elements) != 6 {
		t.Fatalf("array grew to %d elements, want 6", len(arr.Elements))
	}
	if arr.Elements[5] != float64(99) {
		t.Fatalf("arr[5] = %v, want 99", arr.Elements[5])
	}
	if arr.Elements[2] != Undefined {
		t.Fatalf("gap element should be Undefined, got %v", arr.Elements[2])
	}
}

func TestDeleteMemberJSObject(t *testing.T) {
	e := New(Undefined, nil)
	obj := NewJSObject()
	obj.Set("x", float64(1))
	if !e.deleteMember(obj, "x") {
		t.Fatal("deleteMember returned false")
	}
	if _, ok := obj.Get("x"); ok {
		t.Fatal("key still present after delete")
	}
}

// hostElement is a bare host struct (no pre-wired Parent) used to exercise
// the attach-on-first-read rule in isolation from host.NewElement, which
// already wires Style.Parent at construction time.
type hostElement struct {
	Style *host.CSSStyleDeclaration
}

// Reading a CSSStyleDeclaration with no parent yet attaches the object it
// was read off of, so a later checker dispatch can attribute a style
// mutation back to its owning element.
func TestReadMemberAttachesStyleParentOnFirstRead(t *testing.T) {
	e := New(Undefined, nil)
	el := &hostElement{Style: host.NewCSSStyleDeclaration()}

	style := e.readMember(el, "Style")
	sd, ok := style.(host.StyleDeclaration)
	if !ok {
		t.Fatalf("expected host.StyleDeclaration, got %T", style)
	}
	if !sd.HasParent() {
		t.Fatal("expected parent to be attached on first read")
	}
	if sd.GetParent() != el {
		t.Fatalf("parent = %v, want the element itself", sd.GetParent())
	}
}

// A second read through a different caller must not overwrite a parent
// that was already attached — simulated here by applying the attach rule
// to the same Style object again with a different caller.
func TestReadMemberDoesNotOverwriteExistingStyleParent(t *testing.T) {
	e := New(Undefined, nil)
	el := &hostElement{Style: host.NewCSSStyleDeclaration()}

	e.readMember(el, "Style") // attaches el as parent
	attachParentIfStyleOrTokenList(el.Style, "someone else")

	if el.Style.GetParent() != el {
		t.Fatalf("parent changed to %v, want %v", el.Style.GetParent(), el)
	}
}

func TestEnumerableKeysOrderForPlainObject(t *testing.T) {
	obj := NewJSObject()
	obj.Set("b", float64(1))
	obj.Set("a", float64(2))
	keys := enumerableKeys(obj)
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("keys = %v, want insertion order [b a]", keys)
	}
}
