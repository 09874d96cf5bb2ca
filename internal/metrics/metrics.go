// Package metrics aggregates reconciled cards into per-set completion
// counters. Pure computation: no I/O, same input gives same output.
package metrics

import (
	"strconv"

	"github.com/lepinkainen/binder/internal/card"
	"github.com/lepinkainen/binder/internal/reconcile"
)

// Counter tracks ownership within one slice of a set. Owned and Pending
// are independent, overlapping counts: a duplicate purchase contributes
// to both.
type Counter struct {
	Total   int
	Owned   int
	Pending int
}

func (c *Counter) add(rc reconcile.Card) {
	c.Total++
	if rc.HasCard {
		c.Owned++
	}
	if rc.CardmarketPending {
		c.Pending++
	}
}

// OwnedPercent returns the owned share of the counter as a percentage.
func (c Counter) OwnedPercent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Owned) / float64(c.Total) * 100
}

// PendingPercent returns the pending share of the counter as a percentage.
func (c Counter) PendingPercent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Pending) / float64(c.Total) * 100
}

// SetMetrics holds the completion counters for one set. Standard covers
// cards numbered within the set's printed size, Secret the cards beyond
// it. StandardNormal and StandardReverse split Standard by variant;
// other variants account for any gap.
type SetMetrics struct {
	Boundary int  // printed set size; meaningful only when Bounded
	Bounded  bool // false when no card carried a total count

	All             Counter
	Standard        Counter
	StandardNormal  Counter
	StandardReverse Counter
	Secret          Counter
}

// ForSet computes completion metrics for one set's reconciled cards.
// The boundary is the first non-empty total count found among the
// cards; with no boundary every card counts as standard. Non-numeric
// card numbers compare as 0 and therefore land in the standard bucket.
func ForSet(cards []reconcile.Card) SetMetrics {
	m := SetMetrics{}

	for _, c := range cards {
		if c.TotalCount == "" {
			continue
		}
		if boundary, err := strconv.Atoi(c.TotalCount); err == nil {
			m.Boundary = boundary
			m.Bounded = true
		}
		break
	}

	for _, c := range cards {
		m.All.add(c)

		if m.Bounded && cardNumber(c) > m.Boundary {
			m.Secret.add(c)
			continue
		}

		m.Standard.add(c)
		switch c.Variant {
		case card.VariantNormal:
			m.StandardNormal.add(c)
		case card.VariantReverseHolo:
			m.StandardReverse.add(c)
		}
	}

	return m
}

// cardNumber parses a card number for boundary comparison. Non-numeric
// numbers count as 0, placing them in the standard bucket.
func cardNumber(c reconcile.Card) int {
	n, err := strconv.Atoi(c.Number)
	if err != nil {
		return 0
	}
	return n
}
