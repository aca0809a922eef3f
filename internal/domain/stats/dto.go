package stats

// MonthlyStats is the counter rollup for one employee's month.
type MonthlyStats struct {
	Present  int `json:"present"`
	Late     int `json:"late"`
	Early    int `json:"early"`
	Overtime int `json:"overtime"`
	Absent   int `json:"absent"`
	DayOff   int `json:"day_off"`
}

type MonthResponse struct {
	EmployeeID string       `json:"employee_id"`
	Year       int          `json:"year"`
	Month      int          `json:"month"`
	Stats      MonthlyStats `json:"stats"`
}
