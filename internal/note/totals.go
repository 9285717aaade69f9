package note

import "fmt"

// Totals summarises time spent across sessions and supervision.
type Totals struct {
	SessionMinutes     int `json:"total_session_minutes"`
	SessionCount       int `json:"total_session_count"`
	SupervisionMinutes int `json:"total_supervision_minutes"`
	SupervisionCount   int `json:"total_supervision_count"`
}

func (t Totals) Check() error {
	if t.SessionMinutes < 0 || t.SessionCount < 0 || t.SupervisionMinutes < 0 || t.SupervisionCount < 0 {
		return &ShapeError{Record: "totals", Field: "values", Reason: "cannot be negative"}
	}
	return nil
}

func (t Totals) String() string {
	return fmt.Sprintf(
		"Sessions: %d (%s) · Supervision: %d (%s)",
		t.SessionCount,
		FormatMinutes(t.SessionMinutes),
		t.SupervisionCount,
		FormatMinutes(t.SupervisionMinutes),
	)
}

// FormatMinutes renders minutes as hours with one decimal, e.g. "2.5h".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
