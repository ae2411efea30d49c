package conversation

import "fmt"

// Rules holds the restaurant's booking constraints. Prompt templates
// interpolate the same values the handlers validate against, so the two
// cannot drift apart.
type Rules struct {
	PartyMin           int `yaml:"party_min"`
	PartyMax           int `yaml:"party_max"`
	BookingHorizonDays int `yaml:"booking_horizon_days"`
	OpeningHour        int `yaml:"opening_hour"`
	ClosingHour        int `yaml:"closing_hour"`
}

// DefaultRules returns the house defaults: parties of 1-20, bookings up to
// 90 days out, seatings between 11:00 and 22:59.
func DefaultRules() Rules {
	return Rules{
		PartyMin:           1,
		PartyMax:           20,
		BookingHorizonDays: 90,
		OpeningHour:        11,
		ClosingHour:        22,
	}
}

// hourLabel renders a 24-hour value as the short 12-hour form used in the
// time prompt, e.g. 11 -> "11AM", 22 -> "10PM".
func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12AM"
	case hour < 12:
		return fmt.Sprintf("%dAM", hour)
	case hour == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", hour-12)
	}
}
