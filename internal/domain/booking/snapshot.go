package booking

import "time"

// NightLine is one priced night within a snapshot.
type NightLine struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
}

// PriceSnapshot is the itemized price computed once at creation (or update)
// and never silently recomputed. An update replaces the whole snapshot; the
// previous one stays inspectable for audit until then.
type PriceSnapshot struct {
	Nights           []NightLine `json:"nights"`
	BaseTotalCents   int64       `json:"base_total_cents"`
	CleaningFeeCents int64       `json:"cleaning_fee_cents"`
	ServiceFeeCents  int64       `json:"service_fee_cents"`
	TotalCents       int64       `json:"total_cents"`
	Currency         string      `json:"currency"`
}

func (s PriceSnapshot) IsZero() bool {
	return s.TotalCents == 0 && len(s.Nights) == 0
}
