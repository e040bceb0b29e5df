package usecase

import (
	"airtrack-service/internal/domain/entity"
)

// needsNotification decides whether a refreshed ticket batch warrants
// alerting the direction's subscribers. lastPrice is the price cached
// before the refresh, nil when no offer was ever seen; tickets is the
// fresh batch ordered by ascending price.
//
// An empty batch never notifies. The very first offer for a direction
// always does. Otherwise the cheapest new price must have dropped by at
// least thresholdPct percent; the comparison is <=, so a price landing
// exactly on the boundary notifies.
func needsNotification(lastPrice *float64, tickets []entity.Ticket, thresholdPct int) bool {
	if len(tickets) == 0 {
		return false
	}
	if lastPrice == nil {
		return true
	}
	threshold := *lastPrice * (1 - float64(thresholdPct)/100)
	return tickets[0].Price <= threshold
}
