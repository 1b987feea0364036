package dto

import (
	"sort"
	"time"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type CarSnapshot struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

type UserSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingSummary struct {
	ID        int64        `json:"id"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Days      int          `json:"days"`
	Status    string       `json:"status"`
	Amount    MoneyDTO     `json:"amount"`
	Car       CarSnapshot  `json:"car"`
	Renter    UserSnapshot `json:"renter"`
	Owner     UserSnapshot `json:"owner"`
}

type CalendarDay struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"in_month"`
	IsToday bool   `json:"is_today"`
}

type BarSegment struct {
	BookingID    int64  `json:"booking_id"`
	Status       string `json:"status"`
	Row          int    `json:"row"`
	StartColumn  int    `json:"start_column"`
	ColumnSpan   int    `json:"column_span"`
	ClippedStart bool   `json:"clipped_start"`
	ClippedEnd   bool   `json:"clipped_end"`
	Selected     bool   `json:"selected"`
}

type DayOverflow struct {
	Date       string  `json:"date"`
	Shown      []int64 `json:"shown"`
	Hidden     int     `json:"hidden"`
	TotalCount int     `json:"total_count"`
}

type MonthGrid struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Label     string          `json:"label"`
	Weeks     [][]CalendarDay `json:"weeks"`
	Segments  []BarSegment    `json:"segments"`
	Overflows []DayOverflow   `json:"overflows"`
}

type Summary struct {
	Count    int            `json:"count"`
	ByStatus map[string]int `json:"by_status"`
	Totals   []MoneyDTO     `json:"totals"`
}

type CalendarLayout struct {
	Label      string            `json:"label"`
	Anchor     string            `json:"anchor"`
	WindowSize int               `json:"window_size"`
	Prev       string            `json:"prev"`
	Next       string            `json:"next"`
	Filters    map[string]string `json:"filters"`
	SelectedID *int64            `json:"selected_id"`
	Selected   *BookingSummary   `json:"selected"`
	Grids      []MonthGrid       `json:"grids"`
	Bookings   []BookingSummary  `json:"bookings"`
	Summary    Summary           `json:"summary"`
}

type DayDetails struct {
	Date       string           `json:"date"`
	Shown      []int64          `json:"shown"`
	Hidden     int              `json:"hidden"`
	TotalCount int              `json:"total_count"`
	Bookings   []BookingSummary `json:"bookings"`
}

type View struct {
	ID         string            `json:"id"`
	Anchor     string            `json:"anchor"`
	WindowSize int               `json:"window_size"`
	Filters    map[string]string `json:"filters"`
	SelectedID *int64            `json:"selected_id"`
}

// LayoutInput gathers what MapLayout needs besides the layout itself.
type LayoutInput struct {
	Layout  calendar.Layout
	Summary calendar.Summary
	Visible []booking.Booking
	View    calendar.ViewState
	Prev    time.Time
	Next    time.Time
}

func MapMoney(m money.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Decimal(), Currency: m.Currency}
}

func MapBooking(b booking.Booking) BookingSummary {
	return BookingSummary{
		ID:        int64(b.ID),
		StartDate: daterange.Format(b.Range.Start),
		EndDate:   daterange.Format(b.Range.End),
		Days:      b.Range.Days(),
		Status:    string(b.Status),
		Amount:    MapMoney(b.Amount),
		Car:       CarSnapshot{ID: b.Car.ID, Plate: b.Car.Plate, Model: b.Car.Model},
		Renter:    UserSnapshot{ID: b.Renter.ID, Name: b.Renter.Name},
		Owner:     UserSnapshot{ID: b.Owner.ID, Name: b.Owner.Name},
	}
}

func MapBookings(bookings []booking.Booking) []BookingSummary {
	out := make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, MapBooking(b))
	}
	return out
}

func MapOverflow(o calendar.DayOverflow) DayOverflow {
	return DayOverflow{
		Date:       daterange.Format(o.Date),
		Shown:      mapIDs(o.Shown),
		Hidden:     o.Hidden(),
		TotalCount: o.TotalCount,
	}
}

func MapDayDetails(o calendar.DayOverflow, covering []booking.Booking) DayDetails {
	overflow := MapOverflow(o)
	return DayDetails{
		Date:       overflow.Date,
		Shown:      overflow.Shown,
		Hidden:     overflow.Hidden,
		TotalCount: overflow.TotalCount,
		Bookings:   MapBookings(covering),
	}
}

func MapView(id string, v calendar.ViewState) View {
	return View{
		ID:         id,
		Anchor:     daterange.Format(v.Anchor),
		WindowSize: v.WindowSize,
		Filters:    v.Filters.Values(),
		SelectedID: selectedID(v),
	}
}

// MapLayout projects a layout for rendering. Segments of the selected booking
// are moved to the end of each grid so they draw on top.
func MapLayout(in LayoutInput) CalendarLayout {
	statuses := make(map[booking.ID]booking.Status, len(in.Visible))
	for _, b := range in.Visible {
		statuses[b.ID] = b.Status
	}
	selID, hasSel := in.View.Selected()

	grids := make([]MonthGrid, 0, len(in.Layout.Grids))
	for _, gl := range in.Layout.Grids {
		grids = append(grids, mapGrid(gl, statuses, selID, hasSel))
	}

	out := CalendarLayout{
		Label:      in.Layout.Window.Label,
		Anchor:     daterange.Format(in.Layout.Window.Anchor),
		WindowSize: in.Layout.Window.Size,
		Prev:       daterange.Format(in.Prev),
		Next:       daterange.Format(in.Next),
		Filters:    in.View.Filters.Values(),
		SelectedID: selectedID(in.View),
		Grids:      grids,
		Bookings:   MapBookings(in.Visible),
		Summary:    mapSummary(in.Summary),
	}
	if b, ok := in.View.SelectedIn(in.Visible); ok {
		selected := MapBooking(b)
		out.Selected = &selected
	}
	return out
}

func mapGrid(gl calendar.GridLayout, statuses map[booking.ID]booking.Status, selID booking.ID, hasSel bool) MonthGrid {
	weeks := make([][]CalendarDay, 0, calendar.WeeksPerGrid)
	for _, row := range gl.Grid.Rows() {
		week := make([]CalendarDay, 0, calendar.DaysPerWeek)
		for _, cell := range row {
			week = append(week, CalendarDay{
				Date:    daterange.Format(cell.Date),
				Day:     cell.Date.Day(),
				InMonth: cell.InMonth,
				IsToday: cell.IsToday,
			})
		}
		weeks = append(weeks, week)
	}

	segments := make([]BarSegment, 0, len(gl.Segments))
	for _, seg := range gl.Segments {
		segments = append(segments, BarSegment{
			BookingID:    int64(seg.BookingID),
			Status:       string(statuses[seg.BookingID]),
			Row:          seg.Row,
			StartColumn:  seg.StartColumn,
			ColumnSpan:   seg.ColumnSpan,
			ClippedStart: seg.ClippedStart,
			ClippedEnd:   seg.ClippedEnd,
			Selected:     hasSel && seg.BookingID == selID,
		})
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return !segments[i].Selected && segments[j].Selected
	})

	overflows := make([]DayOverflow, 0, len(gl.Overflows))
	for _, o := range gl.Overflows {
		overflows = append(overflows, MapOverflow(o))
	}

	first := time.Date(gl.Grid.Year, gl.Grid.Month, 1, 0, 0, 0, 0, time.UTC)
	return MonthGrid{
		Year:      gl.Grid.Year,
		Month:     int(gl.Grid.Month),
		Label:     first.Format("January 2006"),
		Weeks:     weeks,
		Segments:  segments,
		Overflows: overflows,
	}
}

func mapSummary(s calendar.Summary) Summary {
	byStatus := make(map[string]int, len(booking.Statuses))
	for _, status := range booking.Statuses {
		byStatus[string(status)] = s.ByStatus[status]
	}
	currencies := make([]string, 0, len(s.Totals))
	for c := range s.Totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	totals := make([]MoneyDTO, 0, len(currencies))
	for _, c := range currencies {
		totals = append(totals, MapMoney(s.Totals[c]))
	}
	return Summary{Count: s.Count, ByStatus: byStatus, Totals: totals}
}

func selectedID(v calendar.ViewState) *int64 {
	id, ok := v.Selected()
	if !ok {
		return nil
	}
	raw := int64(id)
	return &raw
}

func mapIDs(ids []booking.ID) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
