package stripe

import "strings"

// NormalizeCheckoutStatus maps Stripe checkout/payment statuses onto
// the small set this app cares about for activation payments.
func NormalizeCheckoutStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "paid", "complete", "succeeded":
		return "paid"
	case "unpaid", "open":
		return "unpaid"
	case "expired", "canceled":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
