package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/domain/shared/money"
)

type bookingFixture struct {
	ID        int64  `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Car       struct {
		ID    string `json:"id"`
		Plate string `json:"plate"`
		Model string `json:"model"`
	} `json:"car"`
	Renter userFixture `json:"renter"`
	Owner  userFixture `json:"owner"`
}

type userFixture struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DecodeBookingFixtures parses a JSON array of booking records. Records with
// unparsable fields or start after end are rejected individually and reported
// in rejected; the rest are returned.
func DecodeBookingFixtures(data []byte) (bookings []booking.Booking, rejected []error, err error) {
	var fixtures []bookingFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, nil, fmt.Errorf("decode booking fixtures: %w", err)
	}
	bookings = make([]booking.Booking, 0, len(fixtures))
	for i, fx := range fixtures {
		b, err := fx.toBooking()
		if err != nil {
			rejected = append(rejected, fmt.Errorf("fixture %d (id %d): %w", i, fx.ID, err))
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, rejected, nil
}

// LoadBookingFixtures reads and decodes the fixtures file at path.
func LoadBookingFixtures(path string) ([]booking.Booking, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read booking fixtures: %w", err)
	}
	return DecodeBookingFixtures(data)
}

func (fx bookingFixture) toBooking() (booking.Booking, error) {
	start, err := daterange.Parse(fx.StartDate)
	if err != nil {
		return booking.Booking{}, err
	}
	end, err := daterange.Parse(fx.EndDate)
	if err != nil {
		return booking.Booking{}, err
	}
	r, err := daterange.New(start, end)
	if err != nil {
		return booking.Booking{}, err
	}
	status, err := booking.ParseStatus(fx.Status)
	if err != nil {
		return booking.Booking{}, err
	}
	currency := fx.Currency
	if currency == "" {
		currency = "USD"
	}
	amount := money.Money{}
	if fx.Amount != "" {
		amount, err = money.ParseDecimal(fx.Amount, currency)
		if err != nil {
			return booking.Booking{}, err
		}
	}
	return booking.Booking{
		ID:     booking.ID(fx.ID),
		Range:  r,
		Status: status,
		Amount: amount,
		Car:    booking.CarRef{ID: fx.Car.ID, Plate: fx.Car.Plate, Model: fx.Car.Model},
		Renter: booking.UserRef{ID: fx.Renter.ID, Name: fx.Renter.Name},
		Owner:  booking.UserRef{ID: fx.Owner.ID, Name: fx.Owner.Name},
	}, nil
}
