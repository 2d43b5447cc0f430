package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// HTTPClient talks to the real gateway over its REST API, authenticated with
// the merchant secret key. The socket timeout bounds the worst case for the
// request thread; there is no retry.
type HTTPClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		baseURL:   os.Getenv("GATEWAY_BASE_URL"),
		secretKey: os.Getenv("GATEWAY_SECRET_KEY"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int    `json:"amount"`
}

type cancelRequest struct {
	CancelReason string `json:"cancelReason"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *HTTPClient) Confirm(ctx context.Context, paymentKey, orderID string, amount int) (*ConfirmResult, error) {
	body, err := json.Marshal(confirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, err
	}

	resp, err := g.post(ctx, "/v1/payments/confirm", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result ConfirmResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding confirm response: %w", err)
	}
	return &result, nil
}

func (g *HTTPClient) Cancel(ctx context.Context, paymentKey, reason string) error {
	body, err := json.Marshal(cancelRequest{CancelReason: reason})
	if err != nil {
		return err
	}

	resp, err := g.post(ctx, "/v1/payments/"+paymentKey+"/cancel", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

func (g *HTTPClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth(g.secretKey))
	return g.client.Do(req)
}

// The gateway authenticates with "secretKey:" as a basic auth user.
func basicAuth(secretKey string) string {
	return base64.StdEncoding.EncodeToString([]byte(secretKey + ":"))
}

func decodeError(resp *http.Response) error {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Code == "" {
		er.Code = CodeProviderError
		er.Message = resp.Status
	}
	return &Error{
		Status:  resp.StatusCode,
		Code:    er.Code,
		Message: er.Message,
	}
}
