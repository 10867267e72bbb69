package model

import "time"

// SellerStats are the usage counters behind an insights request.
type SellerStats struct {
	ProductCount  int64      `json:"productCount"`
	ContentCount  int64      `json:"contentCount"`
	DaysSincePost *int       `json:"daysSincePost"`
	LastPostedAt  *time.Time `json:"lastPostedAt"`
}

// Insights is the four-field advice object returned by the text model.
type Insights struct {
	Summary     string `json:"summary"`
	Strength    string `json:"strength"`
	Improvement string `json:"improvement"`
	Action      string `json:"action"`
}

// Complete reports whether every field is filled in.
func (i Insights) Complete() bool {
	return i.Summary != "" && i.Strength != "" && i.Improvement != "" && i.Action != ""
}

// FallbackInsights is returned whenever the model output cannot be parsed.
func FallbackInsights() Insights {
	return Insights{
		Summary:     "Keep posting consistently to grow your business!",
		Strength:    "You're using AI to save time",
		Improvement: "Post more frequently",
		Action:      "Create content for one product today",
	}
}

// InsightsReport is the insights endpoint payload.
type InsightsReport struct {
	Stats    SellerStats `json:"stats"`
	Insights Insights    `json:"insights"`
}
