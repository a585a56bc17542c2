package toolpath

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
)

func TestLabel(t *testing.T) {
	var zero Label
	if zero.Valid() {
		t.Error("zero label should be invalid")
	}

	c := Connection()
	if !c.Valid() || !c.IsConnection() {
		t.Errorf("Connection() = %v, want valid connection", c)
	}
	if c.Priority != ConnectionPriority {
		t.Errorf("Connection().Priority = %d, want %d", c.Priority, ConnectionPriority)
	}

	infill := New(KindInfill, 1)
	if infill.Compare(c) <= 0 {
		t.Error("infill should sort above connection")
	}
	if infill == New(KindInfill, 2) {
		t.Error("labels with different priority should differ")
	}
	if infill != (Label{Kind: KindInfill, Owner: OwnerModel, Priority: 1}) {
		t.Error("New should set model owner")
	}
}

func TestLabelJSON(t *testing.T) {
	in := Label{Kind: KindPerimeter, Owner: OwnerSupport, Priority: 3}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"perimeter","owner":"support","priority":3}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out Label
	if err := json.Unmarshal([]byte(`{"kind":"INSETS","priority":2}`), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != New(KindInsets, 2) {
		t.Errorf("Unmarshal = %v, want %v", out, New(KindInsets, 2))
	}

	if err := json.Unmarshal([]byte(`{"kind":"gcode"}`), &out); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPathsStats(t *testing.T) {
	ps := Paths{
		{Label: New(KindInfill, 1), Path: geom.OpenPath{{X: 0, Y: 0}, {X: 3, Y: 4}}},
		{Label: New(KindInfill, 1), Path: geom.OpenPath{{X: 3, Y: 8}, {X: 3, Y: 9}}},
	}
	if got := ps.Points(); got != 4 {
		t.Errorf("Points = %d, want 4", got)
	}
	if got := ps.Length(); got != 6 {
		t.Errorf("Length = %v, want 6", got)
	}
	if got := ps.TravelLength(); got != 4 {
		t.Errorf("TravelLength = %v, want 4", got)
	}
}

func TestLabeled(t *testing.T) {
	loops := []geom.Loop{{{X: 0, Y: 0}}, {{X: 1, Y: 1}}}
	l := New(KindPerimeter, 5)

	var got []Label
	for _, lab := range Labeled(slices.Values(loops), l) {
		got = append(got, lab)
	}
	if len(got) != 2 || got[0] != l || got[1] != l {
		t.Errorf("Labeled = %v, want two copies of %v", got, l)
	}
}

func TestLabeledPathReset(t *testing.T) {
	var p LabeledPath
	p.Label = New(KindInfill, 1)
	p.Append(r2.Point{X: 1}, r2.Point{X: 2})
	if p.Len() != 2 || p.End() != (r2.Point{X: 2}) {
		t.Errorf("after Append: Len = %d, End = %v", p.Len(), p.End())
	}
	p.Reset()
	if p.Label.Valid() || p.Len() != 0 {
		t.Errorf("after Reset: %v", p)
	}
}
