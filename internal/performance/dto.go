// AngelaMos | 2026
// dto.go

package performance

import "time"

type UpsertRecordRequest struct {
	RecordDate     string  `json:"record_date"     validate:"required,datetime=2006-01-02"`
	SalesTarget    float64 `json:"sales_target"    validate:"gte=0"`
	SalesCurrent   float64 `json:"sales_current"   validate:"gte=0"`
	AverageTicket  float64 `json:"average_ticket"  validate:"gte=0"`
	NPS            int     `json:"nps"             validate:"gte=-100,lte=100"`
	ConversionRate float64 `json:"conversion_rate" validate:"gte=0,lte=100"`
}

type RecordResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	RecordDate     string  `json:"record_date"`
	SalesTarget    float64 `json:"sales_target"`
	SalesCurrent   float64 `json:"sales_current"`
	AverageTicket  float64 `json:"average_ticket"`
	NPS            int     `json:"nps"`
	ConversionRate float64 `json:"conversion_rate"`
	TargetReached  bool    `json:"target_reached"`
}

func ToRecordResponse(r *Record) RecordResponse {
	return RecordResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		RecordDate:     r.RecordDate.Format(time.DateOnly),
		SalesTarget:    r.SalesTarget,
		SalesCurrent:   r.SalesCurrent,
		AverageTicket:  r.AverageTicket,
		NPS:            r.NPS,
		ConversionRate: r.ConversionRate,
		TargetReached:  r.TargetReached(),
	}
}

func ToRecordResponseList(records []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for i := range records {
		out = append(out, ToRecordResponse(&records[i]))
	}
	return out
}
