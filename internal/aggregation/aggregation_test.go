package aggregation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/maax3v3/colr/internal/color"
)

var (
	red   = color.RGB{R: 255, A: 1}
	green = color.RGB{G: 255, A: 1}
	blue  = color.RGB{B: 255, A: 1}
)

func TestReduce_Empty(t *testing.T) {
	if got := Reduce(nil, nil, 5); len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestReduce_NoReduction(t *testing.T) {
	got := Reduce([]color.RGB{red, green, blue}, nil, 0)
	want := []Entry{{red, 1}, {green, 1}, {blue, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_DuplicateColors(t *testing.T) {
	got := Reduce([]color.RGB{blue, red, red, red}, nil, 0)
	// red outweighs blue, so it comes first
	want := []Entry{{red, 3}, {blue, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_MergeToMaxColors(t *testing.T) {
	colors := []color.RGB{
		red,
		{R: 245, A: 1}, // near-red
		blue,
		{B: 245, A: 1}, // near-blue
		green,
	}
	got := Reduce(colors, nil, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	want := []Entry{
		{color.RGB{R: 250, A: 1}, 2},
		{color.RGB{B: 250, A: 1}, 2},
		{green, 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_WeightedMerge(t *testing.T) {
	colors := []color.RGB{{R: 200, A: 1}, {R: 100, A: 1}}
	got := Reduce(colors, []float64{3, 1}, 1)
	want := []Entry{{color.RGB{R: 175, A: 1}, 4}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SingleColor(t *testing.T) {
	got := Reduce([]color.RGB{red, red}, nil, 1)
	if diff := cmp.Diff([]Entry{{red, 2}}, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_MaxAboveCount(t *testing.T) {
	if got := Reduce([]color.RGB{red, blue}, nil, 10); len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}
