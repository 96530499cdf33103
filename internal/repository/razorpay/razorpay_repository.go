package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"rajwen/domain"
)

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

type RazorpayRepository struct {
	razorpayConfig RazorpayConfig
	client         *http.Client
}

func NewRazorpayRepository(cfg RazorpayConfig) *RazorpayRepository {
	return &RazorpayRepository{
		razorpayConfig: cfg,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateGatewayOrder opens a razorpay order for the given amount (rupees,
// converted to paise on the wire) so the client can complete the payment
// against it.
func (r *RazorpayRepository) CreateGatewayOrder(ctx context.Context, amount float64, receipt string, notes map[string]string) (domain.RazorpayOrder, error) {
	url := r.razorpayConfig.BaseURL + "/v1/orders"

	payload := createOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: "INR",
		Receipt:  receipt,
		Notes:    notes,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return domain.RazorpayOrder{}, fmt.Errorf("failed to marshal gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return domain.RazorpayOrder{}, err
	}
	req.Header.Add("Content-Type", "application/json")
	req.SetBasicAuth(r.razorpayConfig.KeyID, r.razorpayConfig.KeySecret)

	res, err := r.client.Do(req)
	if err != nil {
		return domain.RazorpayOrder{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.RazorpayOrder{}, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.RazorpayOrder{}, fmt.Errorf("gateway returned %v: %s", res.StatusCode, string(body))
	}

	var gatewayOrder domain.RazorpayOrder
	if err := json.Unmarshal(body, &gatewayOrder); err != nil {
		return domain.RazorpayOrder{}, fmt.Errorf("failed to unmarshal gateway response: %w", err)
	}

	return gatewayOrder, nil
}
