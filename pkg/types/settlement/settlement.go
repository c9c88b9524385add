package settlement

import (
	"bytes"
	"context"
	"encoding/json"
)

// Request is the body of the settlement API's fetch call.
type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Prefix   string `json:"prefix"`
	Date     string `json:"date"`
}

// Amount keeps the raw amount text. Bare JSON numbers are accepted and kept
// in their literal form.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

type Deposit struct {
	TxnID         string `json:"txn_id"`
	FetchDate     string `json:"fetch_date"`
	DepositAmount Amount `json:"deposit_amount"`
	BankIcon      string `json:"bank_icon"`
	Status        string `json:"status"`
	Remark        string `json:"remark"`
	DepositType   string `json:"deposit_type"`
}

type Response struct {
	Deposits []Deposit `json:"deposits"`
}

type DepositFetcher interface {
	FetchDeposits(ctx context.Context, req Request) ([]Deposit, error)
}
