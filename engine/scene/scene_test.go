package scene

import "testing"

func TestAddAndPayload(t *testing.T) {
	g := NewGraph()
	id := g.Add(g.Root(), 1.5, "tile")
	if got := g.Payload(id); got != "tile" {
		t.Errorf("Payload = %v, want tile", got)
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
}

func TestChildrenSortedByDepth(t *testing.T) {
	g := NewGraph()
	c := g.Add(g.Root(), 3, "c")
	a := g.Add(g.Root(), 1, "a")
	b := g.Add(g.Root(), 2, "b")

	got := g.Children(g.Root())
	want := []ID{a, b, c}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children order %v, want %v", got, want)
		}
	}

	// Depth edits reorder on the next call.
	g.SetDepth(a, 10)
	got = g.Children(g.Root())
	if got[len(got)-1] != a {
		t.Errorf("raised node did not sort last: %v", got)
	}
}

func TestStableOrderOnEqualDepth(t *testing.T) {
	g := NewGraph()
	first := g.Add(g.Root(), 5, "first")
	second := g.Add(g.Root(), 5, "second")
	got := g.Children(g.Root())
	if got[0] != first || got[1] != second {
		t.Errorf("equal-depth nodes reordered: %v", got)
	}
}

func TestRemoveSubtree(t *testing.T) {
	g := NewGraph()
	parent := g.Add(g.Root(), 1, "p")
	child := g.Add(parent, 2, "c")
	grand := g.Add(child, 3, "g")

	g.Remove(parent)

	if g.Len() != 0 {
		t.Errorf("Len after subtree removal = %d, want 0", g.Len())
	}
	for _, id := range []ID{parent, child, grand} {
		if g.Payload(id) != nil {
			t.Errorf("node %d still has a payload after removal", id)
		}
	}
	if len(g.Children(g.Root())) != 0 {
		t.Errorf("root still lists removed children")
	}
}

func TestSlotReuse(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), 1, "a")
	g.Remove(a)
	b := g.Add(g.Root(), 1, "b")
	if b != a {
		t.Errorf("freed slot not reused: got %d, want %d", b, a)
	}
	if g.Payload(b) != "b" {
		t.Errorf("recycled slot kept old payload")
	}
}

func TestClearSafeWhenEmpty(t *testing.T) {
	g := NewGraph()
	g.Clear()
	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len = %d after clearing empty graph", g.Len())
	}
	g.Add(g.Root(), 1, "x")
	g.Clear()
	if g.Len() != 0 || len(g.Children(g.Root())) != 0 {
		t.Errorf("graph not empty after Clear")
	}
}

func TestRemoveDeadHandleIsNoOp(t *testing.T) {
	g := NewGraph()
	a := g.Add(g.Root(), 1, "a")
	g.Remove(a)
	g.Remove(a) // second removal must not disturb the arena
	b := g.Add(g.Root(), 2, "b")
	if g.Payload(b) != "b" || g.Len() != 1 {
		t.Errorf("arena corrupted by double remove")
	}
}
