package summary

import (
	"strings"

	"depositrecon/internal/models"
)

// DeductionMarker flags a credit deduction in a deposit's status or remark.
const DeductionMarker = "ตัดเครดิต"

type Class string

const (
	ClassDeduction Class = "Deduction"
	ClassManual    Class = "Manual"
	ClassAuto      Class = "Auto"
)

type Classifier interface {
	Classify(deposit models.Deposit) Class
}

var _ Classifier = (*MarkerClassifier)(nil)

// MarkerClassifier matches deduction markers as case-sensitive substrings.
// A deduction marker wins over the deposit type.
type MarkerClassifier struct {
	markers []string
}

func NewMarkerClassifier(markers ...string) *MarkerClassifier {
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, DeductionMarker)
	}
	return &MarkerClassifier{markers: kept}
}

func (c *MarkerClassifier) Classify(deposit models.Deposit) Class {
	if c.isDeduction(deposit.Status) || c.isDeduction(deposit.Remark) {
		return ClassDeduction
	}
	if deposit.DepositType == models.DepositTypeManual {
		return ClassManual
	}
	return ClassAuto
}

func (c *MarkerClassifier) isDeduction(text string) bool {
	for _, m := range c.markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
