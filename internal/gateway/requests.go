package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/desk-portal-api/internal/models"
)

// ListDeskRequests fetches all desk requests, optionally by status.
// Admin only upstream.
func (c *Client) ListDeskRequests(ctx context.Context, token, status string) ([]models.DeskRequest, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{status}}
	}
	var out []models.DeskRequest
	if err := c.do(ctx, http.MethodGet, "/desk-requests/", token, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyDeskRequests fetches the calling employee's own desk requests.
func (c *Client) MyDeskRequests(ctx context.Context, token string) ([]models.DeskRequest, error) {
	var out []models.DeskRequest
	if err := c.do(ctx, http.MethodGet, "/desk-requests/me", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createDeskRequestPayload struct {
	Shift    string `json:"shift"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Note     string `json:"note,omitempty"`
}

// CreateDeskRequest submits a desk request for the calling employee.
func (c *Client) CreateDeskRequest(ctx context.Context, token, shift, fromDate, toDate, note string) (*models.DeskRequest, error) {
	payload := createDeskRequestPayload{Shift: shift, FromDate: fromDate, ToDate: toDate, Note: note}
	var out models.DeskRequest
	if err := c.do(ctx, http.MethodPost, "/desk-requests/", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
