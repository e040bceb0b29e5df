package notifier

import (
	"fmt"
	"strings"

	"airtrack-service/internal/domain/entity"
)

const bookingBaseURL = "https://www.aviasales.com"

// formatNotification renders the alert message: the route, then the
// cheapest new offer with its booking link.
func formatNotification(tickets []entity.Ticket, direction entity.FlightDirection) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💰 Price drop: <b>%s — %s</b>\n", direction.StartName, direction.EndName))
	b.WriteString(routeDetails(direction))
	if len(tickets) == 0 {
		return b.String()
	}
	cheapest := tickets[0]
	b.WriteString(fmt.Sprintf("\nCheapest offer: <b>%.0f</b>\n", cheapest.Price))
	b.WriteString(fmt.Sprintf("Departure %s\n", cheapest.DepartureAt.Format("02.01.2006 15:04")))
	if cheapest.ReturnAt != nil {
		b.WriteString(fmt.Sprintf("Return %s\n", cheapest.ReturnAt.Format("02.01.2006 15:04")))
	}
	b.WriteString(fmt.Sprintf("<a href=%q>Book</a>", bookingURL(cheapest.Link)))
	return b.String()
}

func routeDetails(direction entity.FlightDirection) string {
	transfer := "direct only"
	if direction.WithTransfer {
		transfer = "transfers allowed"
	}
	if direction.ReturnAt != "" {
		return fmt.Sprintf("%s → %s, back %s, %s\n", direction.StartCode, direction.DepartureAt, direction.ReturnAt, transfer)
	}
	return fmt.Sprintf("%s → %s, one way, %s\n", direction.StartCode, direction.DepartureAt, transfer)
}

func bookingURL(link string) string {
	if strings.HasPrefix(link, "http") {
		return link
	}
	return bookingBaseURL + link
}
