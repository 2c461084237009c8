// AngelaMos | 2026
// entity.go

package performance

import "time"

// Record is a daily performance snapshot for one user. The pair
// (UserID, RecordDate) is unique and later imports for the same day
// overwrite the metric columns.
type Record struct {
	ID             string    `db:"id"              json:"id"`
	UserID         string    `db:"user_id"         json:"user_id"`
	RecordDate     time.Time `db:"record_date"     json:"record_date"`
	SalesTarget    float64   `db:"sales_target"    json:"sales_target"`
	SalesCurrent   float64   `db:"sales_current"   json:"sales_current"`
	AverageTicket  float64   `db:"average_ticket"  json:"average_ticket"`
	NPS            int       `db:"nps"             json:"nps"`
	ConversionRate float64   `db:"conversion_rate" json:"conversion_rate"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// TargetReached reports whether current sales meet or exceed the target.
func (r *Record) TargetReached() bool {
	return r.SalesTarget > 0 && r.SalesCurrent >= r.SalesTarget
}
