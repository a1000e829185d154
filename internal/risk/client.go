package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the flood-risk evaluation returned by the prediction
// service. Only Probability is consumed today; Alert and RouteSummary
// are carried through for future use.
type Result struct {
	Probability  float64
	Alert        string
	RouteSummary string
}

// Lookup resolves the flood-risk probability for a route between two
// free-text addresses.
type Lookup interface {
	RiskForRoute(ctx context.Context, start, end string) (Result, error)
}

// Client calls the remote prediction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type riskRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Wire field names are fixed by the upstream service.
type riskResponse struct {
	Probability  float64 `json:"probabilidade"`
	Alert        string  `json:"alerta"`
	RouteSummary string  `json:"resumoRota"`
}

func (c *Client) RiskForRoute(ctx context.Context, start, end string) (Result, error) {
	body, err := json.Marshal(riskRequest{Start: start, End: end})
	if err != nil {
		return Result{}, fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/risk", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data riskResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return Result{
		Probability:  data.Probability,
		Alert:        data.Alert,
		RouteSummary: data.RouteSummary,
	}, nil
}
