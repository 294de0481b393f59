// SPDX-License-Identifier: MIT

package scenario

import "errors"

var (
	// ErrUnknownKind is returned for a kind outside the supported set.
	ErrUnknownKind = errors.New("scenario: unknown kind")

	// ErrMissingSection is returned when the section of the kind is absent.
	ErrMissingSection = errors.New("scenario: missing section")

	// ErrBadScenario is returned for values no problem could be built from.
	ErrBadScenario = errors.New("scenario: invalid scenario")
)
