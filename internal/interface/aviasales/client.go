// Package aviasales implements the TicketSource port against the
// Travelpayouts flight data API.
package aviasales

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/pkg/logger"
)

const (
	defaultBaseURL     = "https://api.travelpayouts.com"
	pricesForDatesPath = "/aviasales/v3/prices_for_dates"
	groupedPricesPath  = "/aviasales/v3/grouped_prices"
)

// Client calls the Travelpayouts API. Requests are bounded by the
// configured timeout; a timeout counts as source unavailability.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	currency   string
	logger     logger.Logger
}

// NewClient creates a new Travelpayouts client.
func NewClient(token, currency string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		token:      token,
		currency:   currency,
		logger:     log,
	}
}

// GetTickets returns up to limit cheapest tickets for the direction,
// ordered by ascending price.
func (c *Client) GetTickets(ctx context.Context, direction entity.FlightDirection, limit int) ([]entity.Ticket, error) {
	params := url.Values{}
	params.Set("origin", direction.StartCode)
	params.Set("destination", direction.EndCode)
	params.Set("departure_at", direction.DepartureAt)
	params.Set("direct", directParam(direction))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("currency", c.currency)
	params.Set("sorting", "price")
	params.Set("token", c.token)
	if direction.ReturnAt != "" {
		params.Set("return_at", direction.ReturnAt)
	}

	body, err := c.get(ctx, pricesForDatesPath, params)
	if err != nil {
		return nil, err
	}
	return parseTickets(body)
}

// GetMonthPrices returns the cheapest ticket per departure date of the
// given month, keyed by "YYYY-MM-DD".
func (c *Client) GetMonthPrices(ctx context.Context, direction entity.FlightDirection, year int, month int) (map[string]entity.Ticket, error) {
	params := url.Values{}
	params.Set("origin", direction.StartCode)
	params.Set("destination", direction.EndCode)
	params.Set("departure_at", fmt.Sprintf("%04d-%02d", year, month))
	params.Set("direct", directParam(direction))
	params.Set("group_by", "departure_at")
	params.Set("currency", c.currency)
	params.Set("token", c.token)
	if direction.ReturnAt != "" {
		params.Set("return_at", direction.ReturnAt)
	}

	body, err := c.get(ctx, groupedPricesPath, params)
	if err != nil {
		return nil, err
	}
	return parseGroupedTickets(body)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ticket source request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ticket source rejected request", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", entity.ErrSourceRejected, resp.StatusCode)
	}
	return body, nil
}

func directParam(direction entity.FlightDirection) string {
	if direction.WithTransfer {
		return "false"
	}
	return "true"
}
