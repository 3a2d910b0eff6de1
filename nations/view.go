package nations

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownView = errors.New("unknown view")

// One of the tabs a visitor can pick between.
type View string

const (
	ViewRichest  View = "richest"
	ViewLargest  View = "largest"
	ViewPopulous View = "populous"
)

const DefaultView = ViewRichest

// All views in the order their tabs are shown.
func Views() []View {
	return []View{ViewRichest, ViewLargest, ViewPopulous}
}

func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewRichest, ViewLargest, ViewPopulous:
		return v, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

func (v View) Metric() Metric {
	switch v {
	case ViewLargest:
		return MetricSize
	case ViewPopulous:
		return MetricPopulation
	default:
		return MetricWealth
	}
}

func (v View) Title() string {
	switch v {
	case ViewLargest:
		return "Largest"
	case ViewPopulous:
		return "Most Populous"
	default:
		return "Richest"
	}
}

func (v View) String() string {
	return string(v)
}

// Shorthand for ranking by the metric behind v.
func RankView(list []Nation, v View) []DisplayRecord {
	return Rank(list, v.Metric())
}
