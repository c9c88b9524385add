package summary

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CreditUnit is the currency word the settlement API appends to amounts.
const CreditUnit = "เครดิต"

var ErrInvalidAmount = errors.New("invalid amount")

var amountDecorations = strings.NewReplacer(CreditUnit, "", ",", "")

// plainAmount is a signed decimal without exponent. Exponents would let a
// short string become infinite or force a huge rescale when summed.
var plainAmount = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmountStrict normalises a settlement amount such as "1,234.50 เครดิต".
func ParseAmountStrict(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountDecorations.Replace(text))
	if cleaned == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidAmount, "empty amount")
	}

	if !plainAmount.MatchString(cleaned) {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q", text)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q", text)
	}
	return amount, nil
}

// ParseAmount is ParseAmountStrict with every failure mapped to zero.
func ParseAmount(text string) float64 {
	amount, err := ParseAmountStrict(text)
	if err != nil {
		return 0
	}
	return amount.InexactFloat64()
}
