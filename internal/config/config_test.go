package config

import "testing"

func TestGetFloatFallsBackOnMiss(t *testing.T) {
	c := New(map[string]any{}, nil)
	if got := c.GetFloat("entities.villager.move_speed", 3.5); got != 3.5 {
		t.Fatalf("expected default 3.5, got %f", got)
	}
}

func TestGetResolvesNestedKeyPath(t *testing.T) {
	doc := map[string]any{
		"entities": map[string]any{
			"villager": map[string]any{
				"move_speed": 4.0,
			},
		},
	}
	c := New(doc, nil)
	if got := c.GetFloat("entities.villager.move_speed", 0); got != 4.0 {
		t.Fatalf("expected 4.0, got %f", got)
	}
}

func TestGetMapReturnsEmptyMapOnMiss(t *testing.T) {
	c := New(map[string]any{}, nil)
	m := c.GetMap("entities.crops")
	if m == nil || len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestGetFloatRangeResolvesTwoElementSequence(t *testing.T) {
	doc := map[string]any{
		"entities": map[string]any{
			"crops": map[string]any{
				"wheat": map[string]any{
					"yield": []any{1.0, 3.0},
				},
			},
		},
	}
	c := New(doc, nil)
	got := c.GetFloatRange("entities.crops.wheat.yield", [2]float64{0, 0})
	if got != [2]float64{1.0, 3.0} {
		t.Fatalf("expected [1,3], got %v", got)
	}
}
