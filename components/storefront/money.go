package storefront

import "strconv"

// A quarter of the listed price is collected up front, rounded to the
// nearest rupee.
const advanceShareDenominator = 4

// Quote is the payment split for a product at order-initiation time.
type Quote struct {
	Price   int
	Advance int
	Balance int
}

// QuoteAdvance computes the 25% advance and remaining balance for a price.
// Advance + Balance always equals Price exactly.
func QuoteAdvance(price int) Quote {
	advance := (price + advanceShareDenominator/2) / advanceShareDenominator
	return Quote{
		Price:   price,
		Advance: advance,
		Balance: price - advance,
	}
}

// FormatINR renders a rupee amount with the Indian digit grouping used across
// every rendered view (for example 375000 -> "₹3,75,000").
func FormatINR(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	grouped := groupIndian(digits)
	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts separators after the last three digits and then every
// two digits: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var out []byte
	for i, c := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	out = append(out, ',')
	out = append(out, tail...)
	return string(out)
}
