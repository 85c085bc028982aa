package operators

import "testing"

func TestDefaultBinaryArithmeticAndConcat(t *testing.T) {
	tbl := Default()
	tests := []struct {
		name string
		op   string
		l, r interface{}
		want interface{}
	}{
		{"add numbers", "+", 1.0, 2.0, 3.0},
		{"concat when left is string", "+", "a", 1.0, "a1"},
		{"concat when right is string", "+", 1.0, "b", "1b"},
		{"subtract", "-", 5.0, 3.0, 2.0},
		{"multiply", "*", 3.0, 4.0, 12.0},
		{"modulo", "%", 7.0, 3.0, 1.0},
		{"string less-than", "<", "a", "b", true},
		{"numeric less-than", "<", 1.0, 2.0, true},
		{"loose equals coerces", "==", "1", 1.0, true},
		{"strict equals rejects coercion", "===", "1", 1.0, false},
		{"not-equal", "!=", 1.0, 2.0, true},
		{"bitwise and", "&", 6.0, 3.0, 2.0},
		{"bitwise or", "|", 4.0, 1.0, 5.0},
		{"left shift", "<<", 1.0, 3.0, 8.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := tbl.Binary[tt.op]
			if !ok {
				t.Fatalf("operator %q missing from table", tt.op)
			}
			got := fn(tt.l, tt.r)
			if got != tt.want {
				t.Errorf("%v %s %v = %v, want %v", tt.l, tt.op, tt.r, got, tt.want)
			}
		})
	}
}

func TestDefaultUnary(t *testing.T) {
	tbl := Default()
	tests := []struct {
		name string
		op   string
		arg  interface{}
		want interface{}
	}{
		{"negate", "-", 5.0, -5.0},
		{"unary plus coerces string", "+", "42", 42.0},
		{"logical not true", "!", true, false},
		{"logical not falsy string", "!", "", true},
		{"typeof number", "typeof", 1.0, "number"},
		{"typeof string", "typeof", "x", "string"},
		{"typeof bool", "typeof", true, "boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := tbl.Unary[tt.op]
			if !ok {
				t.Fatalf("operator %q missing from table", tt.op)
			}
			got := fn(tt.arg)
			if got != tt.want {
				t.Errorf("%s %v = %v, want %v", tt.op, tt.arg, got, tt.want)
			}
		})
	}
}

func TestDefaultUpdate(t *testing.T) {
	tbl := Default()
	if got := tbl.Update["++"](5.0); got != 6.0 {
		t.Errorf("++5 = %v, want 6", got)
	}
	if got := tbl.Update["--"](5.0); got != 4.0 {
		t.Errorf("--5 = %v, want 4", got)
	}
}

func TestToNumberStringCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"  3.5  ", 3.5},
		{"", 0},
	}
	for _, tt := range tests {
		if got := toNumber(tt.in); got != tt.want {
			t.Errorf("toNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := toNumber("not a number"); got == got {
		t.Errorf("toNumber(%q) = %v, want NaN", "not a number", got)
	}
}

func TestLooseEqualsNumericStringCoercion(t *testing.T) {
	if !looseEquals("1", 1.0) {
		t.Error(`"1" == 1 should be true`)
	}
	if looseEquals("abc", 0.0) {
		t.Error(`"abc" == 0 should be false`)
	}
}
