package floor

import "strings"

// DayFilter narrows the day log by comanda status.
type DayFilter string

const (
	DayAll    DayFilter = "ALL"
	DayOpen   DayFilter = "OPEN"
	DayClosed DayFilter = "CLOSED"
)

// FilterDay applies the status filter and a case-insensitive table-name
// search over the day log. Filtering is purely client-side.
func FilterDay(rows []DayComandaRow, filter DayFilter, search string) []DayComandaRow {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]DayComandaRow, 0, len(rows))
	for _, r := range rows {
		if filter != DayAll && filter != "" && r.Status != string(filter) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Table.Name), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}
