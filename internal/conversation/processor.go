// Package conversation implements the reservation turn processor: a pure
// computation over one session's state and one user utterance. Each turn
// runs an input guard, a step handler, and a response composer in order.
// The composer may roll the step transition back when the rendered
// response would exceed the output budget.
package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reservehq/concierge/internal/model/reservation"
)

const (
	maxInputRunes    = 120
	maxResponseRunes = 120

	lowConfidence = 0.7
	disclaimer    = " [?] Sure?"

	msgInputTooLong    = "Input too long! Max 120 characters."
	msgResponseTooLong = "Response too long. Please try again."
	msgFallback        = "Please continue."

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

const startGreeting = "What's your seating preference? e.g Window Seat, Bar, Patio, Quiet, High-top, No Preference"

// Greeting is the fixed session-start prompt, issued without running a turn.
func Greeting() string {
	return truncate(startGreeting, maxResponseRunes)
}

// Processor drives the conversation state machine for one restaurant's
// booking rules.
type Processor struct {
	rules Rules
	now   func() time.Time
}

// NewProcessor builds a processor for the given rules.
func NewProcessor(rules Rules) *Processor {
	return &Processor{rules: rules, now: time.Now}
}

// ProcessTurn consumes one user input against the session and returns the
// updated session plus the agent response. The session is taken and
// returned by value; the caller owns persistence. The returned response is
// never longer than 120 characters.
func (p *Processor) ProcessTurn(sess reservation.Session, input string) (reservation.Session, string) {
	input = strings.TrimSpace(input)

	// Input guard: reject before any transition. The confidence write is a
	// deliberate turn-level effect, so the caller still persists it.
	if utf8.RuneCountInString(input) > maxInputRunes {
		sess.Confidence = 0.2
		return sess, msgInputTooLong
	}

	// Two-phase commit: advance a candidate, compose its response, and only
	// keep the transition if the response fits the output budget.
	next := sess
	p.advance(&next, input)

	response := p.prompt(next)
	if next.Confidence < lowConfidence {
		response += disclaimer
	}

	if utf8.RuneCountInString(response) > maxResponseRunes {
		// The confirmation summary interpolates variable-length fields, so
		// overflow is only detectable after composing. Revert the transition
		// (collected fields stay) and ask again.
		next.CurrentStep = sess.CurrentStep
		next.Confidence = 0.3
		return next, msgResponseTooLong
	}

	return next, truncate(response, maxResponseRunes)
}

// advance runs the handler for the session's current step. Validation
// failures never move the step; they only lower confidence.
func (p *Processor) advance(sess *reservation.Session, input string) {
	switch sess.CurrentStep {
	case reservation.StepGreeting:
		// Any input, including empty, starts the flow.
		sess.CurrentStep = reservation.StepPartySize
		sess.Confidence = 0.95

	case reservation.StepPartySize:
		size, err := strconv.Atoi(input)
		switch {
		case err != nil:
			sess.Confidence = 0.4
		case size < p.rules.PartyMin || size > p.rules.PartyMax:
			sess.Confidence = 0.3
		default:
			sess.PartySize = size
			sess.CurrentStep = reservation.StepDate
			sess.Confidence = 0.9
		}

	case reservation.StepDate:
		day, err := time.Parse(dateLayout, input)
		if err != nil {
			sess.Confidence = 0.4
			return
		}
		today := p.today()
		horizon := today.AddDate(0, 0, p.rules.BookingHorizonDays)
		if day.Before(today) || day.After(horizon) {
			sess.Confidence = 0.5
			return
		}
		sess.Date = day.Format(dateLayout)
		sess.CurrentStep = reservation.StepTime
		sess.Confidence = 0.85

	case reservation.StepTime:
		clock, err := time.Parse(timeLayout, input)
		if err != nil {
			sess.Confidence = 0.4
			return
		}
		if clock.Hour() < p.rules.OpeningHour || clock.Hour() > p.rules.ClosingHour {
			sess.Confidence = 0.7
			return
		}
		sess.Time = clock.Format(timeLayout)
		sess.CurrentStep = reservation.StepName
		sess.Confidence = 0.9

	case reservation.StepName:
		if utf8.RuneCountInString(input) < 2 {
			sess.Confidence = 0.5
			return
		}
		sess.Name = input
		sess.CurrentStep = reservation.StepPhone
		sess.Confidence = 0.95

	case reservation.StepPhone:
		digits := digitsOnly(input)
		if len(digits) < 10 {
			sess.Confidence = 0.6
			return
		}
		sess.Phone = digits
		sess.CurrentStep = reservation.StepConfirmation
		sess.Confidence = 0.98

	case reservation.StepConfirmation:
		switch strings.ToLower(input) {
		case "yes", "y", "confirm":
			sess.Completed = true
			sess.CurrentStep = reservation.StepCompleted
			sess.Confidence = 1.0
		default:
			// Soft retry: re-collect from party size onward without
			// discarding what the guest already gave us.
			sess.CurrentStep = reservation.StepPartySize
			sess.Confidence = 0.8
		}

	case reservation.StepCompleted:
		// Terminal. Confidence untouched.

	default:
		// Unreachable given the closed Step set; stay put if the record was
		// ever corrupted out of band.
	}
}

// prompt renders the template for the step the session landed on. Keyed on
// the same enum as advance, so prompts and transitions stay in sync.
func (p *Processor) prompt(sess reservation.Session) string {
	switch sess.CurrentStep {
	case reservation.StepGreeting:
		return "Welcome! Let's book your table."
	case reservation.StepPartySize:
		return fmt.Sprintf("How many guests? (%d-%d)", p.rules.PartyMin, p.rules.PartyMax)
	case reservation.StepDate:
		return "What date? (YYYY-MM-DD)"
	case reservation.StepTime:
		return fmt.Sprintf("What time? (HH:MM, %s-%s)", hourLabel(p.rules.OpeningHour), hourLabel(p.rules.ClosingHour))
	case reservation.StepName:
		return "Your name?"
	case reservation.StepPhone:
		return "Your phone number?"
	case reservation.StepConfirmation:
		return fmt.Sprintf("Confirm: %d on %s at %s, %s, %s? (Yes/No)",
			sess.PartySize, sess.Date, sess.Time, sess.Name, sess.Phone)
	case reservation.StepCompleted:
		return "Reservation confirmed! See you soon."
	default:
		return msgFallback
	}
}

// today returns the current calendar date at UTC midnight, comparable with
// values from time.Parse on the date layout.
func (p *Processor) today() time.Time {
	year, month, day := p.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
