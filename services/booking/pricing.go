package booking

// PriceCalculator prices a grid selection.
type PriceCalculator interface {
	Price(start, end *int) int64
	HourlyRate() int64
}

// FlatHourly charges a fixed rate per hour in the smallest currency unit.
type FlatHourly struct {
	Rate int64
}

// DefaultHourlyRate is the venue's base price per hour.
const DefaultHourlyRate int64 = 15000

func (f FlatHourly) Price(start, end *int) int64 {
	return Price(start, end, f.Rate)
}

func (f FlatHourly) HourlyRate() int64 {
	return f.Rate
}

// Price returns (end-start)*rate with both bounds, one hour with only a start, and
// zero without a start.
func Price(start, end *int, hourlyRate int64) int64 {
	switch {
	case start == nil:
		return 0
	case end == nil:
		return hourlyRate
	default:
		return int64(*end-*start) * hourlyRate
	}
}
