package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Step identifies the stage of the booking conversation. Transitions are
// produced exclusively by the conversation package, so a Session never
// carries a value outside this set.
type Step string

const (
	StepGreeting     Step = "greeting"
	StepPartySize    Step = "party_size"
	StepDate         Step = "date"
	StepTime         Step = "time"
	StepName         Step = "name"
	StepPhone        Step = "phone"
	StepConfirmation Step = "confirmation"
	StepCompleted    Step = "completed"
)

// Session captures one in-progress reservation conversation. Collected
// fields use zero values until set; Date and Time hold the normalized
// "2006-01-02" and "15:04" forms.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PartySize int    `json:"party_size"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`

	CurrentStep Step    `json:"current_step"`
	Confidence  float64 `json:"confidence"`
	Completed   bool    `json:"completed"`
}

// NewSession provisions a fresh conversation at the greeting step.
func NewSession() Session {
	now := time.Now().UTC()
	return Session{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
		CurrentStep: StepGreeting,
		Confidence:  1.0,
	}
}

// Progress reports how much of the reservation has been collected, as an
// integer percentage over the five core fields.
func (s Session) Progress() int {
	count := 0
	if s.PartySize != 0 {
		count++
	}
	if s.Date != "" {
		count++
	}
	if s.Time != "" {
		count++
	}
	if s.Name != "" {
		count++
	}
	if s.Phone != "" {
		count++
	}
	percent := count * 100 / 5
	if percent > 100 {
		percent = 100
	}
	return percent
}

// View is the read-only serialized form of a session exposed to clients.
type View struct {
	ID                 string  `json:"id"`
	PartySize          int     `json:"party_size"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	CurrentStep        Step    `json:"current_step"`
	Confidence         float64 `json:"confidence"`
	Completed          bool    `json:"completed"`
	ProgressPercentage int     `json:"progress_percentage"`
}

// View projects the session into its wire form.
func (s Session) View() View {
	return View{
		ID:                 s.ID,
		PartySize:          s.PartySize,
		Date:               s.Date,
		Time:               s.Time,
		Name:               s.Name,
		Phone:              s.Phone,
		Email:              s.Email,
		CurrentStep:        s.CurrentStep,
		Confidence:         s.Confidence,
		Completed:          s.Completed,
		ProgressPercentage: s.Progress(),
	}
}
