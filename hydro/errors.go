// SPDX-License-Identifier: MIT

package hydro

import "errors"

var (
	// ErrUnknownMonth is returned when a month index has no entry in a
	// monthly table or lies outside 0..11.
	ErrUnknownMonth = errors.New("hydro: unknown month")

	// ErrBadPlant is returned for physically inconsistent plant parameters.
	ErrBadPlant = errors.New("hydro: invalid plant")

	// ErrBadConfig is returned for an inconsistent schedule configuration.
	ErrBadConfig = errors.New("hydro: invalid configuration")
)
