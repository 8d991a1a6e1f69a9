package catalog

import (
	"reflect"
	"testing"
)

func TestBuildPredicate_Empty(t *testing.T) {
	pred := BuildPredicate(ListFilter{})
	if pred.Where != "" {
		t.Fatalf("expected universal predicate, got %q", pred.Where)
	}
	if len(pred.Args) != 0 {
		t.Fatalf("expected no args, got %v", pred.Args)
	}
}

func TestBuildPredicate_ActiveEncodings(t *testing.T) {
	truthy := []any{true, 1, float64(1), "1", "true", " TRUE "}
	falsy := []any{false, 0, float64(0), "0", "false", " False "}

	for _, v := range truthy {
		pred := BuildPredicate(ListFilter{Active: v})
		if pred.Where != "is_active = ?" {
			t.Fatalf("active=%v (%T): unexpected where %q", v, v, pred.Where)
		}
		if !reflect.DeepEqual(pred.Args, []any{true}) {
			t.Fatalf("active=%v (%T): unexpected args %v", v, v, pred.Args)
		}
	}
	for _, v := range falsy {
		pred := BuildPredicate(ListFilter{Active: v})
		if !reflect.DeepEqual(pred.Args, []any{false}) {
			t.Fatalf("active=%v (%T): unexpected args %v", v, v, pred.Args)
		}
	}
}

func TestBuildPredicate_ActiveUnrecognized(t *testing.T) {
	for _, v := range []any{nil, "", "maybe", 2, float64(0.5), []string{"1"}} {
		pred := BuildPredicate(ListFilter{Active: v})
		if pred.Where != "" {
			t.Fatalf("active=%v: expected no filter, got %q", v, pred.Where)
		}
	}
}

func TestBuildPredicate_ExactFieldsTrimmed(t *testing.T) {
	pred := BuildPredicate(ListFilter{District: "  Kadıköy ", City: "   "})
	if pred.Where != "district = ?" {
		t.Fatalf("unexpected where %q", pred.Where)
	}
	if !reflect.DeepEqual(pred.Args, []any{"Kadıköy"}) {
		t.Fatalf("unexpected args %v", pred.Args)
	}
}

func TestBuildPredicate_SearchDisjunction(t *testing.T) {
	pred := BuildPredicate(ListFilter{Search: " sea view "})
	want := "(title LIKE ? OR address LIKE ? OR district LIKE ? OR city LIKE ? OR type LIKE ? OR status LIKE ?)"
	if pred.Where != want {
		t.Fatalf("unexpected where %q", pred.Where)
	}
	if len(pred.Args) != 6 {
		t.Fatalf("expected 6 args, got %v", pred.Args)
	}
	for _, a := range pred.Args {
		if a != "%sea view%" {
			t.Fatalf("unexpected arg %v", a)
		}
	}
}

func TestBuildPredicate_Conjunction(t *testing.T) {
	pred := BuildPredicate(ListFilter{
		Search:   "flat",
		Active:   "1",
		District: "Moda",
	})
	want := "is_active = ? AND district = ? AND " +
		"(title LIKE ? OR address LIKE ? OR district LIKE ? OR city LIKE ? OR type LIKE ? OR status LIKE ?)"
	if pred.Where != want {
		t.Fatalf("unexpected where %q", pred.Where)
	}
	if pred.Args[0] != true || pred.Args[1] != "Moda" {
		t.Fatalf("unexpected leading args %v", pred.Args)
	}
}
