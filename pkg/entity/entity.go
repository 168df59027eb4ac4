package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Action is a habit definition. It is active on a date D iff
// StartDate <= D and (EndDate is nil or EndDate >= D).
type Action struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Target    int        `json:"target"`
	Unit      string     `json:"unit"`
	Increment int        `json:"increment"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Weekdays  []string   `json:"weekdays"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ActionRecord is one day's progress for an Action. Display fields are a
// snapshot copied from the Action at creation time, so later edits of the
// Action never rewrite history.
type ActionRecord struct {
	ID        uuid.UUID `json:"id"`
	ActionID  uuid.UUID `json:"actionId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Target    int       `json:"target"`
	Unit      string    `json:"unit"`
	Increment int       `json:"increment"`
	Done      int       `json:"done"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyAction is the read-only projection returned for a given day: the
// action plus the done counter of its record for that day (0 if none).
type DailyAction struct {
	Action
	Done int `json:"done"`
}

const ActionTypeYesNo = "yesNo"
const ActionTypeNumber = "number"

func IsActionType(s string) bool {
	return s == ActionTypeYesNo || s == ActionTypeNumber
}

var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if s == d {
			return true
		}
	}
	return false
}
