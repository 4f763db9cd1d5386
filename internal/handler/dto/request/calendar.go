package request

import (
	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/commands"
)

type CalendarOverrideEntry struct {
	Date            string `json:"date" binding:"required"`
	Available       bool   `json:"available"`
	AdjustmentCents int64  `json:"adjustment_cents"`
	MinStayNights   int    `json:"min_stay_nights"`
}

type ApplyOverridesRequest struct {
	Overrides []CalendarOverrideEntry `json:"overrides" binding:"required,min=1,dive"`
}

func (r ApplyOverridesRequest) ToInputs() ([]commands.OverrideInput, error) {
	inputs := make([]commands.OverrideInput, 0, len(r.Overrides))
	for _, e := range r.Overrides {
		day, err := dates.Parse(e.Date)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, commands.OverrideInput{
			Date:            day,
			Available:       e.Available,
			AdjustmentCents: e.AdjustmentCents,
			MinStayNights:   e.MinStayNights,
		})
	}
	return inputs, nil
}
