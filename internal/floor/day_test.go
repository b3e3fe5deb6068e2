package floor

import (
	"testing"

	"github.com/google/uuid"
)

func dayRows() []DayComandaRow {
	return []DayComandaRow{
		{ID: uuid.New(), Status: ComandaOpen, Table: TableRef{Name: "Mesa 1"}},
		{ID: uuid.New(), Status: ComandaClosed, Table: TableRef{Name: "Mesa 2"}},
		{ID: uuid.New(), Status: ComandaOpen, Table: TableRef{Name: "Varanda"}},
	}
}

func TestFilterDay(t *testing.T) {
	tests := []struct {
		name   string
		filter DayFilter
		search string
		want   []string
	}{
		{name: "allNoSearch", filter: DayAll, want: []string{"Mesa 1", "Mesa 2", "Varanda"}},
		{name: "emptyFilterMeansAll", filter: "", want: []string{"Mesa 1", "Mesa 2", "Varanda"}},
		{name: "openOnly", filter: DayOpen, want: []string{"Mesa 1", "Varanda"}},
		{name: "closedOnly", filter: DayClosed, want: []string{"Mesa 2"}},
		{name: "searchCaseInsensitive", filter: DayAll, search: "MESA", want: []string{"Mesa 1", "Mesa 2"}},
		{name: "searchTrimmed", filter: DayAll, search: "  varanda ", want: []string{"Varanda"}},
		{name: "filterAndSearchCombine", filter: DayOpen, search: "mesa", want: []string{"Mesa 1"}},
		{name: "noMatches", filter: DayClosed, search: "varanda", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDay(dayRows(), tt.filter, tt.search)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterDay() returned %d rows, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.Table.Name != tt.want[i] {
					t.Errorf("row[%d] table = %q, want %q", i, r.Table.Name, tt.want[i])
				}
			}
		})
	}
}

func TestFilterDayPreservesInputOrder(t *testing.T) {
	rows := dayRows()
	got := FilterDay(rows, DayAll, "")
	for i := range rows {
		if got[i].ID != rows[i].ID {
			t.Fatalf("row[%d] reordered", i)
		}
	}
}
