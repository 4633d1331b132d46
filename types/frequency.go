package types

// Frequency is the auto-rebalance cadence of a portfolio setting.
type Frequency string

const (
	FrequencyNone      Frequency = "none"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

var ConvertFrequency = map[string]Frequency{
	"none":      FrequencyNone,
	"daily":     FrequencyDaily,
	"weekly":    FrequencyWeekly,
	"monthly":   FrequencyMonthly,
	"quarterly": FrequencyQuarterly,
	"annually":  FrequencyAnnually,
}

func (f Frequency) Valid() bool {
	_, ok := ConvertFrequency[string(f)]
	return ok
}
