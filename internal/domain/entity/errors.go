package entity

import "errors"

var (
	// ErrSourceUnavailable covers connection failures and timeouts
	// talking to the ticket source. Transient: the direction is retried
	// on the next cycle.
	ErrSourceUnavailable = errors.New("ticket source unavailable")

	// ErrSourceRejected means the source answered but refused the
	// request (bad parameters, bad token, rate limit). Also transient
	// from the updater's point of view.
	ErrSourceRejected = errors.New("ticket source rejected request")

	// ErrSourceResponse means the response arrived but did not have the
	// expected shape. This is a contract break, not a transient failure,
	// and must surface to the caller instead of being retried away.
	ErrSourceResponse = errors.New("unexpected ticket source response")

	// ErrAlreadyTracked is returned on inserting a (user, direction)
	// link that already exists.
	ErrAlreadyTracked = errors.New("direction already tracked by user")

	// ErrDirectionExists is returned on inserting a direction whose
	// five-field key is already stored. Concurrent trackers of the same
	// new direction hit this; callers merge into the existing row.
	ErrDirectionExists = errors.New("flight direction already exists")

	// ErrTrackingLimit is returned when a user is at the configured
	// per-user direction limit.
	ErrTrackingLimit = errors.New("tracked directions limit reached")

	// ErrDirectionNotFound is returned for lookups of a direction id
	// that is not stored.
	ErrDirectionNotFound = errors.New("flight direction not found")
)
