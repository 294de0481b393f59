// SPDX-License-Identifier: MIT

package hydro

import (
	"fmt"
	"time"
)

// SecondsPerDay is 24·60·60.
const SecondsPerDay = 24 * 60 * 60

// DaysOfMonth returns the number of days of month (0 = January) in year.
func DaysOfMonth(year, month int) (int, error) {
	if month < 0 || month > 11 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMonth, month)
	}
	// day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// SecondsOfMonth returns the length of month (0 = January) in seconds.
func SecondsOfMonth(year, month int) (float64, error) {
	d, err := DaysOfMonth(year, month)
	if err != nil {
		return 0, err
	}

	return float64(d * SecondsPerDay), nil
}
