package fieldtype

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Descriptor
	}{
		{"string", Descriptor{Base: String}},
		{"number", Descriptor{Base: Number}},
		{"boolean", Descriptor{Base: Boolean}},
		{"string | null", Descriptor{Base: String, Nullable: true}},
		{"string[]", Descriptor{Base: String, Array: true}},
		{"number[] | null", Descriptor{Base: Number, Array: true, Nullable: true}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", tc.in, diff)
		}
		if got.String() != tc.in {
			t.Errorf("String() = %q, want %q", got.String(), tc.in)
		}
	}

	for _, bad := range []string{"", "int", "string|null", "null", "string[][]"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse should panic on a malformed type string")
		}
	}()
	MustParse("varchar")
}

func TestMatches(t *testing.T) {
	cases := []struct {
		value any
		ts    string
		want  bool
	}{
		{"x", "string", true},
		{nil, "string", false},
		{nil, "string | null", true},
		{1.5, "number", true},
		{3, "number", true},
		{"1", "number", false},
		{true, "boolean", true},
		{[]any{"a", "b"}, "string[]", true},
		{[]string{"a"}, "string[]", true},
		{[]any{}, "string[]", true},
		{[]any{"a", 1.0}, "string[]", false},
		{"a", "string[]", false},
		{[]float64{1, 2}, "number[]", true},
		{nil, "string[] | null", true},
	}
	for _, tc := range cases {
		if got := Matches(tc.value, tc.ts); got != tc.want {
			t.Errorf("Matches(%v, %q) = %v, want %v", tc.value, tc.ts, got, tc.want)
		}
	}
}

func TestZeroValue(t *testing.T) {
	if v := MustParse("string").ZeroValue(); v != "" {
		t.Errorf("string zero = %v", v)
	}
	if v := MustParse("number").ZeroValue(); v != float64(0) {
		t.Errorf("number zero = %v", v)
	}
	if v := MustParse("boolean").ZeroValue(); v != false {
		t.Errorf("boolean zero = %v", v)
	}
	if diff := cmp.Diff([]any{}, MustParse("string[]").ZeroValue()); diff != "" {
		t.Errorf("array zero:\n%s", diff)
	}
	if v := MustParse("number | null").ZeroValue(); v != nil {
		t.Errorf("nullable zero = %v", v)
	}
}
