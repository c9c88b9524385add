package summary

import (
	"log/slog"
	"sort"

	"depositrecon/internal/models"

	"github.com/shopspring/decimal"
)

type DepositTypeSummary struct {
	Auto   float64 `json:"Auto"`
	Manual float64 `json:"Manual"`
}

// DailySummary is the per-bank breakdown of one fetch date. It is derived
// from the stored deposits on every request and never persisted.
type DailySummary struct {
	FetchDate             string             `json:"fetch_date"`
	Totals                map[string]float64 `json:"totals"`
	Deductions            map[string]float64 `json:"deductions"`
	NetTotals             map[string]float64 `json:"net_totals"`
	TotalNetAmount        float64            `json:"total_net_amount"`
	ManualTotal           float64            `json:"manual_total"`
	TotalDeductionsAmount float64            `json:"total_deductions_amount"`
	NetAfterDeduction     float64            `json:"net_after_deduction"`
	DepositTypeSummary    DepositTypeSummary `json:"deposit_type_summary"`
	RecordCount           int                `json:"record_count"`
	ParseFailures         int                `json:"parse_failures"`
}

// Channels returns every bank appearing in totals or deductions, sorted.
func (s *DailySummary) Channels() []string {
	channels := make([]string, 0, len(s.NetTotals))
	for channel := range s.NetTotals {
		channels = append(channels, channel)
	}
	sort.Strings(channels)
	return channels
}

type Aggregator struct {
	classifier Classifier
	logger     *slog.Logger
}

type AggregatorOption func(*Aggregator)

func WithClassifier(c Classifier) AggregatorOption {
	return func(a *Aggregator) {
		a.classifier = c
	}
}

func WithLogger(l *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = l
	}
}

func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	if a.classifier == nil {
		a.classifier = NewMarkerClassifier()
	}
	return a
}

var defaultAggregator = NewAggregator()

// Aggregate summarises deposits with the default deduction marker.
func Aggregate(fetchDate string, deposits []models.Deposit) *DailySummary {
	return defaultAggregator.Aggregate(fetchDate, deposits)
}

// Aggregate folds the deposits of one day into per-bank figures. Sums are
// exact decimals, so the result does not depend on the order of deposits.
func (a *Aggregator) Aggregate(fetchDate string, deposits []models.Deposit) *DailySummary {
	totals := make(map[string]decimal.Decimal)
	deductions := make(map[string]decimal.Decimal)
	manualTotal := decimal.Zero
	autoTotal := decimal.Zero
	deductionTotal := decimal.Zero
	failures := 0

	for _, d := range deposits {
		amount, err := ParseAmountStrict(d.DepositAmount)
		if err != nil {
			failures++
			if a.logger != nil {
				a.logger.Warn("unparsable deposit amount",
					"txn_id", d.TxnID,
					"fetch_date", d.FetchDate,
					"amount", d.DepositAmount,
				)
			}
		}

		switch a.classifier.Classify(d) {
		case ClassDeduction:
			deductions[d.BankIcon] = deductions[d.BankIcon].Add(amount)
			deductionTotal = deductionTotal.Add(amount)
		case ClassManual:
			totals[d.BankIcon] = totals[d.BankIcon].Add(amount)
			manualTotal = manualTotal.Add(amount)
		default:
			totals[d.BankIcon] = totals[d.BankIcon].Add(amount)
			autoTotal = autoTotal.Add(amount)
		}
	}

	netTotals := make(map[string]decimal.Decimal, len(totals)+len(deductions))
	for channel, total := range totals {
		netTotals[channel] = total
	}
	for channel, deducted := range deductions {
		netTotals[channel] = netTotals[channel].Sub(deducted)
	}

	totalSum := sumValues(totals)

	return &DailySummary{
		FetchDate:             fetchDate,
		Totals:                toFloatMap(totals),
		Deductions:            toFloatMap(deductions),
		NetTotals:             toFloatMap(netTotals),
		TotalNetAmount:        sumValues(netTotals).InexactFloat64(),
		ManualTotal:           manualTotal.InexactFloat64(),
		TotalDeductionsAmount: deductionTotal.InexactFloat64(),
		NetAfterDeduction:     totalSum.Sub(deductionTotal).InexactFloat64(),
		DepositTypeSummary: DepositTypeSummary{
			Auto:   autoTotal.InexactFloat64(),
			Manual: manualTotal.InexactFloat64(),
		},
		RecordCount:   len(deposits),
		ParseFailures: failures,
	}
}

func sumValues(values map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum
}

func toFloatMap(values map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v.InexactFloat64()
	}
	return out
}
