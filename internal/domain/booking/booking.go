package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/domain/shared/money"
)

var ErrInvalidStatus = errors.New("booking: invalid status")

type ID int64

type Status string

const (
	StatusConfirmed  Status = "CONFIRMED"
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every status in dashboard order.
var Statuses = []Status{StatusConfirmed, StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

type CarRef struct {
	ID    string
	Plate string
	Model string
}

type UserRef struct {
	ID   string
	Name string
}

// Booking is a read-only rental record as delivered by the data source.
// Range is inclusive on both ends.
type Booking struct {
	ID     ID
	Range  daterange.DateRange
	Status Status
	Amount money.Money
	Car    CarRef
	Renter UserRef
	Owner  UserRef
}

// Covers reports whether the booking occupies the given calendar day.
// Malformed ranges cover nothing.
func (b Booking) Covers(day time.Time) bool {
	return b.Range.ContainsDay(day)
}

// ListParams bounds a Source query. Zero bounds are open.
type ListParams struct {
	From time.Time
	To   time.Time
}

// Matches reports whether b intersects the params window: it ends on or after
// From and starts on or before To. The bounds apply to the raw start and end,
// so a malformed booking is kept only when both of its dates pass.
func (p ListParams) Matches(b Booking) bool {
	if !p.From.IsZero() && daterange.Day(b.Range.End).Before(daterange.Day(p.From)) {
		return false
	}
	if !p.To.IsZero() && daterange.Day(b.Range.Start).After(daterange.Day(p.To)) {
		return false
	}
	return true
}

// Source supplies booking records. Implementations live in infra.
type Source interface {
	List(ctx context.Context, params ListParams) ([]Booking, error)
}
