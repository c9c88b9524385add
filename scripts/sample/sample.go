package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"math/rand/v2"
	"net/http"
	"time"
)

// Stand-in for the settlement API: serves a deterministic batch of deposits
// for any date so the server and CLI can be exercised locally.
//
//	go run ./scripts/sample -addr :2009
//	SETTLEMENT_BASE_URL=http://localhost:2009 go run ./cmd fetch --date 2025-01-10

type fetchRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Prefix   string `json:"prefix"`
	Date     string `json:"date"`
}

type deposit struct {
	TxnID         string `json:"txn_id"`
	FetchDate     string `json:"fetch_date"`
	DepositAmount string `json:"deposit_amount"`
	BankIcon      string `json:"bank_icon"`
	Status        string `json:"status"`
	Remark        string `json:"remark"`
	DepositType   string `json:"deposit_type"`
}

var banks = []string{"KBANK", "SCB", "BBL", "KTB", "TRUEWALLET"}

func main() {
	addr := flag.String("addr", ":2009", "listen address")
	count := flag.Int("count", 40, "deposits per day")
	flag.Parse()

	http.HandleFunc("/fetch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req fetchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			http.Error(w, "bad date", http.StatusBadRequest)
			return
		}

		deposits := sampleDay(req.Date, *count)
		log.Printf("serving %d deposits for %s (prefix %q)", len(deposits), req.Date, req.Prefix)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"deposits": deposits}); err != nil {
			log.Println("encode:", err)
		}
	})

	log.Printf("sample settlement API listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

// sampleDay is seeded by the date so repeated fetches return the same batch.
func sampleDay(date string, n int) []deposit {
	h := fnv.New64a()
	h.Write([]byte(date))
	rng := rand.New(rand.NewPCG(h.Sum64(), 0))

	deposits := make([]deposit, 0, n)
	for i := 0; i < n; i++ {
		d := deposit{
			TxnID:         fmt.Sprintf("%s-%04d", date, i),
			FetchDate:     date,
			DepositAmount: fmt.Sprintf("%d.%02d เครดิต", 100+rng.IntN(20000), rng.IntN(100)),
			BankIcon:      banks[rng.IntN(len(banks))],
			Status:        "สำเร็จ",
			DepositType:   "Auto",
		}
		switch roll := rng.IntN(10); {
		case roll == 0:
			d.Status = "ตัดเครดิต"
			d.Remark = "ตัดเครดิต โดยแอดมิน"
		case roll < 3:
			d.DepositType = "Manual"
			d.Remark = "เติมมือ"
		}
		deposits = append(deposits, d)
	}
	return deposits
}
