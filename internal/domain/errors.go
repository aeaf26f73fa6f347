package domain

import "fmt"

// ValidationError reports malformed constructor input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid auction: %s %s", e.Field, e.Reason)
}

// BidTooLowError reports a bid that does not beat the current price.
type BidTooLowError struct {
	Current float64
	Amount  float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid %.2f does not beat the current price %.2f", e.Amount, e.Current)
}

// BidBelowLimitError reports a bid that beats the price but does not clear
// the bid limit on top of it.
type BidBelowLimitError struct {
	Current float64
	Limit   float64
	Amount  float64
}

func (e *BidBelowLimitError) Error() string {
	return fmt.Sprintf("bid %.2f must exceed %.2f (current price %.2f plus bid limit %.2f)",
		e.Amount, e.Current+e.Limit, e.Current, e.Limit)
}
