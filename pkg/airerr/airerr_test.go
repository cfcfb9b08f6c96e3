package airerr

import (
	"errors"
	"testing"
)

func TestRendering(t *testing.T) {
	err := Validation("expected string value, got float64")
	wrapped := Wrap(Wrap(err, `field "title"`), `table "Tasks" (tbl1)`)
	want := `table "Tasks" (tbl1): field "title": expected string value, got float64`
	if wrapped.Error() != want {
		t.Fatalf("rendered = %q, want %q", wrapped.Error(), want)
	}
	// Wrapping never mutates the original error value.
	if len(err.Frames) != 0 {
		t.Fatal("wrap mutated the original error")
	}
}

func TestWrapOnlyTouchesSchemaValidation(t *testing.T) {
	nf := NotFound("table missing")
	if got := Wrap(nf, "ctx"); got != error(nf) {
		t.Fatal("not-found errors must pass through unmodified")
	}
	plain := errors.New("boom")
	if got := Wrap(plain, "ctx"); got != plain {
		t.Fatal("foreign errors must pass through unmodified")
	}
}

func TestSuggestionSuffix(t *testing.T) {
	err := API(403, "remote API error 403 Forbidden").
		WithSuggestion("Ensure the API token has `schema.bases:read` permission")
	got := err.Error()
	want := "remote API error 403 Forbidden. Ensure the API token has `schema.bases:read` permission"
	if got != want {
		t.Fatalf("rendered = %q", got)
	}
	if err.Status != 403 {
		t.Fatalf("status = %d", err.Status)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Validation("x")) != KindSchemaValidation {
		t.Fatal("validation kind")
	}
	if KindOf(errors.New("x")) != KindUnknown {
		t.Fatal("foreign errors are unknown kind")
	}
	if KindOf(InvalidParameter("no id")) != KindInvalidParameter {
		t.Fatal("invalid parameter kind")
	}
}
