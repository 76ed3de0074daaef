package client

import (
	"context"
	"net/url"

	"roombook/pkg/model"
)

const bookingPath = "/api/v1/booking"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, req *model.CreateBookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, bookingPath, req)
}

// CreateIdempotent sends the create request with an Idempotency-Key so a
// retried call returns the original booking.
func (c *BookingClient) CreateIdempotent(ctx context.Context, req *model.CreateBookingRequest, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, bookingPath, req, map[string]string{"Idempotency-Key": key})
}

func (c *BookingClient) GetByEmail(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, bookingPath+"/"+url.PathEscape(email))
}

func (c *BookingClient) ListGuests(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, bookingPath)
}

func (c *BookingClient) Modify(ctx context.Context, req *model.ModifyBookingRequest) (*Response, error) {
	return c.httpClient.PUT(ctx, bookingPath, req)
}

func (c *BookingClient) Cancel(ctx context.Context, req *model.CancelBookingRequest) (*Response, error) {
	return c.httpClient.DELETE(ctx, bookingPath, req)
}
