// Package discount resolves discount codes into fixed percentage reductions
// of the cart total.
package discount

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidCode is returned for any non-empty code that is not recognized.
// The message is surfaced to the shopper verbatim.
var ErrInvalidCode = errors.New("Invalid discount code")

// Discount is a resolved discount code.
type Discount struct {
	Code        string
	Rate        decimal.Decimal
	Description string
}

var (
	save10    = Discount{Code: "save10", Rate: decimal.RequireFromString("0.10"), Description: "Discount"}
	welcome20 = Discount{Code: "welcome20", Rate: decimal.RequireFromString("0.20"), Description: "Welcome discount"}
)

// Resolve normalizes a submitted code (surrounding whitespace trimmed, case
// folded) and maps it to a known discount. An empty code resolves to no
// discount (nil, nil); any other unrecognized value is ErrInvalidCode.
func Resolve(code string) (*Discount, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "":
		return nil, nil
	case save10.Code:
		d := save10
		return &d, nil
	case welcome20.Code:
		d := welcome20
		return &d, nil
	default:
		return nil, ErrInvalidCode
	}
}

// Saved returns the amount saved on the given subtotal, rounded to 2 decimal
// places.
func (d *Discount) Saved(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(d.Rate).Round(2)
}

// AppliedNotice renders the success notice shown when the discount is applied.
func (d *Discount) AppliedNotice(saved decimal.Decimal) string {
	return fmt.Sprintf("%s applied! You saved $%s", d.Description, saved.StringFixed(2))
}
