package actions

import "testing"

func TestConnectionObjectSplit(t *testing.T) {
	tests := []struct {
		input      string
		connection string
		object     string
	}{
		{"pg", "pg", ""},
		{"pg.clinic", "pg", "clinic"},
		{"snow.CDC_DEMO_DB.CLINIC", "snow", "CDC_DEMO_DB.CLINIC"},
	}
	for _, tc := range tests {
		c := ConnectionObject{ConnectionObject: tc.input}
		if got := c.GetConnectionName(); got != tc.connection {
			t.Fatalf("%v: expected connection %v, got %v", tc.input, tc.connection, got)
		}
		if got := c.GetObject(); got != tc.object {
			t.Fatalf("%v: expected object %v, got %v", tc.input, tc.object, got)
		}
	}
}
