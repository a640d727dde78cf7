package service

import (
	"errors"
	"time"

	"github.com/insyte-io/linktrack/internal/model"
)

// ErrInvalidDateRange is returned when a date parameter is not an ISO
// date (YYYY-MM-DD).
var ErrInvalidDateRange = errors.New("invalid date format, use YYYY-MM-DD")

const dateLayout = "2006-01-02"

// ParseWindow builds a report window from optional ISO date strings.
// The end date is inclusive of its full calendar day: the window's
// exclusive upper bound is midnight of end date + one day. Empty
// strings leave the corresponding side unbounded.
func ParseWindow(startDate, endDate string) (model.Window, error) {
	var w model.Window

	if startDate != "" {
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return model.Window{}, ErrInvalidDateRange
		}
		w.Start = start.UTC()
	}

	if endDate != "" {
		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return model.Window{}, ErrInvalidDateRange
		}
		w.End = end.UTC().AddDate(0, 0, 1)
	}

	return w, nil
}
