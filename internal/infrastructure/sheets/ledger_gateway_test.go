package sheets

import (
	"testing"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{16, "P"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
	}

	for _, tt := range tests {
		if got := columnLetter(tt.col); got != tt.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestHeaderMatches(t *testing.T) {
	expected := []string{"Stall No", "Invoice No", "Status"}

	if !headerMatches([]string{"Stall No", "Invoice No", "Status"}, expected) {
		t.Error("identical headers should match")
	}
	if headerMatches([]string{"Stall No", "Invoice No"}, expected) {
		t.Error("short legacy header should not match")
	}
	if headerMatches([]string{"Stall No", "Invoice#", "Status"}, expected) {
		t.Error("renamed column should not match")
	}
	if headerMatches(nil, expected) {
		t.Error("empty sheet header should not match")
	}
}
