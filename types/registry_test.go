package types

import "testing"

func TestRegistryCount(t *testing.T) {
	r := NewRegistry()

	// void + 5 scalars + 15 vectors + 18 matrices
	if r.Count() != 39 {
		t.Errorf("expected 39 types, got %d", r.Count())
	}
	if len(All()) != 38 {
		t.Errorf("expected 38 value types, got %d", len(All()))
	}
}

func TestRegistryCanonicalNames(t *testing.T) {
	for _, typ := range NewRegistry().Types() {
		got, ok := Lookup(typ.String())
		if !ok {
			t.Errorf("%s is not registered under its own name", typ)
			continue
		}
		if got != typ {
			t.Errorf("Lookup(%q) = %s", typ.String(), got)
		}
	}
}

func TestRegistrySquareMatrixAliases(t *testing.T) {
	tests := []struct {
		short, long string
	}{
		{"mat2", "mat2x2"},
		{"mat3", "mat3x3"},
		{"mat4", "mat4x4"},
		{"dmat2", "dmat2x2"},
		{"dmat3", "dmat3x3"},
		{"dmat4", "dmat4x4"},
	}

	for _, tt := range tests {
		short, ok1 := Lookup(tt.short)
		long, ok2 := Lookup(tt.long)
		if !ok1 || !ok2 {
			t.Fatalf("expected both %q and %q to be registered", tt.short, tt.long)
		}
		if short != long {
			t.Errorf("%q and %q should be the same type, got %s and %s", tt.short, tt.long, short, long)
		}
		if long.String() != tt.short {
			t.Errorf("canonical name of %q should be %q, got %q", tt.long, tt.short, long.String())
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "error", "imat3", "vec5", "sampler2D", "Foo"} {
		if typ, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) = %s, expected miss", name, typ)
		}
	}
}

func TestIsConstructorName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"int", true},
		{"bvec4", true},
		{"mat4x2", true},
		{"dmat3x3", true},
		{"void", false},
		{"texture", false},
		{"myStruct", false},
	}
	for _, tt := range tests {
		if got := IsConstructorName(tt.name); got != tt.want {
			t.Errorf("IsConstructorName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
