// SPDX-License-Identifier: MIT

package production

import "errors"

var (
	// ErrBadPlan is returned when a plan's tables are inconsistent: empty
	// demand, a quantity without a production price, a negative level, and
	// so on. The wrapped message names the offending field.
	ErrBadPlan = errors.New("production: invalid plan")

	// ErrHorizonMismatch is returned when a realized demand sequence does not
	// cover exactly the planning horizon.
	ErrHorizonMismatch = errors.New("production: demand sequence does not match the horizon")
)
