package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/domain/shared/money"
)

// BookingSource reads booking records maintained by the rental backend.
type BookingSource struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewBookingSource(db *mongo.Database, collection string, logger *slog.Logger) *BookingSource {
	return &BookingSource{col: db.Collection(collection), logger: logger}
}

func (s *BookingSource) List(ctx context.Context, params booking.ListParams) ([]booking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.col.Find(ctx, rangeFilter(params), opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]booking.Booking, 0)
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		b, err := doc.toBooking()
		if err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "skipping malformed booking document", "id", doc.ID, "error", err)
			}
			continue
		}
		out = append(out, b)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// rangeFilter selects documents intersecting params. Dates are stored as
// epoch milliseconds of the calendar day at UTC midnight.
func rangeFilter(params booking.ListParams) bson.M {
	filter := bson.M{}
	if !params.To.IsZero() {
		filter["start_date"] = bson.M{"$lte": daterange.Day(params.To).UnixMilli()}
	}
	if !params.From.IsZero() {
		filter["end_date"] = bson.M{"$gte": daterange.Day(params.From).UnixMilli()}
	}
	return filter
}

type bookingDocument struct {
	ID          int64        `bson:"_id"`
	StartDate   int64        `bson:"start_date"`
	EndDate     int64        `bson:"end_date"`
	Status      string       `bson:"status"`
	AmountMinor int64        `bson:"amount_minor"`
	Currency    string       `bson:"currency"`
	Car         carDocument  `bson:"car"`
	Renter      userDocument `bson:"renter"`
	Owner       userDocument `bson:"owner"`
}

type carDocument struct {
	ID    string `bson:"id"`
	Plate string `bson:"plate"`
	Model string `bson:"model"`
}

type userDocument struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

func (d bookingDocument) toBooking() (booking.Booking, error) {
	status, err := booking.ParseStatus(d.Status)
	if err != nil {
		return booking.Booking{}, err
	}
	amount := money.Money{}
	if d.Currency != "" {
		amount, err = money.New(d.AmountMinor, d.Currency)
		if err != nil {
			return booking.Booking{}, err
		}
	}
	return booking.Booking{
		ID:     booking.ID(d.ID),
		Range:  daterange.Of(timestampToTime(d.StartDate), timestampToTime(d.EndDate)),
		Status: status,
		Amount: amount,
		Car:    booking.CarRef{ID: d.Car.ID, Plate: d.Car.Plate, Model: d.Car.Model},
		Renter: booking.UserRef{ID: d.Renter.ID, Name: d.Renter.Name},
		Owner:  booking.UserRef{ID: d.Owner.ID, Name: d.Owner.Name},
	}, nil
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ booking.Source = (*BookingSource)(nil)
