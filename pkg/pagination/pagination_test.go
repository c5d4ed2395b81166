package pagination

import (
	"testing"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 0, 35)
	for i := 0; i < 35; i++ {
		items = append(items, i)
	}

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantLen   int
		wantFirst int
		wantPages int
	}{
		{name: "first page", page: 1, perPage: 15, wantLen: 15, wantFirst: 0, wantPages: 3},
		{name: "last partial page", page: 3, perPage: 15, wantLen: 5, wantFirst: 30, wantPages: 3},
		{name: "page past end", page: 9, perPage: 15, wantLen: 0, wantPages: 3},
		{name: "invalid params fall back to defaults", page: 0, perPage: -1, wantLen: 15, wantFirst: 0, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Paginate(items, &PaginationParams{Page: tt.page, PerPage: tt.perPage})
			if len(result.Items) != tt.wantLen {
				t.Fatalf("got %d items, want %d", len(result.Items), tt.wantLen)
			}
			if tt.wantLen > 0 && result.Items[0] != tt.wantFirst {
				t.Errorf("first item = %d, want %d", result.Items[0], tt.wantFirst)
			}
			if result.Pagination.TotalPages != tt.wantPages {
				t.Errorf("total pages = %d, want %d", result.Pagination.TotalPages, tt.wantPages)
			}
			if result.Pagination.Total != 35 {
				t.Errorf("total = %d, want 35", result.Pagination.Total)
			}
		})
	}
}
