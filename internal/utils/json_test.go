package utils

import "testing"

func TestIsJSON(t *testing.T) {
	if !IsJSON(`{"columns":["a","b"],"rows":[[1,2]]}`) {
		t.Fatalf("expected valid json to pass")
	}
	if !IsJSON(`[1,2,3]`) {
		t.Fatalf("expected array to pass")
	}
	if IsJSON(`{"columns":`) {
		t.Fatalf("expected truncated json to fail")
	}
	if IsJSON(`not json`) {
		t.Fatalf("expected plain text to fail")
	}
}

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]int{"a": 1})
	if got != `{"a":1}` {
		t.Fatalf("unexpected json: %s", got)
	}
}
