package model

import "time"

// Seller is the business profile bound to one user identity.
type Seller struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	ShopName      string     `json:"shop_name"`
	City          string     `json:"city"`
	PreferredTone string     `json:"preferred_tone"`
	LogoURL       *string    `json:"logo_url"`
	LastPostedAt  *time.Time `json:"last_posted_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasLogo reports whether the seller uploaded a logo.
func (s *Seller) HasLogo() bool {
	return s.LogoURL != nil && *s.LogoURL != ""
}
