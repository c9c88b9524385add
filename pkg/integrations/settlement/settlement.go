package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"depositrecon/pkg/types/settlement"

	"github.com/pkg/errors"
)

var (
	_ settlement.DepositFetcher = (*Client)(nil)
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedPayload = errors.New("malformed payload")
)

const DefaultTimeout = 120 * time.Second

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// FetchDeposits posts the credentials and date to the settlement API and
// returns the day's batch. Only a 200 response with a JSON body is accepted.
func (c *Client) FetchDeposits(ctx context.Context, req settlement.Request) ([]settlement.Deposit, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/fetch", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch deposits")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "%d", resp.StatusCode)
	}

	var payload settlement.Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "decode response: %v", err)
	}

	if payload.Deposits == nil {
		return []settlement.Deposit{}, nil
	}
	return payload.Deposits, nil
}
