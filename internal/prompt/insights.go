package prompt

import (
	"fmt"
	"strconv"

	"sellerboost-api/internal/model"
)

// BuildInsights renders the single user prompt for the insights summary.
func BuildInsights(seller model.Seller, stats model.SellerStats) string {
	daysSince := "Never posted"
	if stats.DaysSincePost != nil {
		daysSince = strconv.Itoa(*stats.DaysSincePost)
	}

	return fmt.Sprintf(`You are a Ghanaian business advisor. Analyze this seller's performance and provide brief, actionable insights:

Shop: %s
City: %s
Products Added: %d
Content Sets Generated: %d
Days Since Last Post: %s

Provide:
1. A brief performance summary (2-3 sentences)
2. One key strength
3. One improvement area
4. One specific action they should take this week

Keep it encouraging, practical, and culturally relevant for a Ghanaian small business owner. Return as JSON:
{
  "summary": "Performance summary text",
  "strength": "Key strength",
  "improvement": "Area to improve",
  "action": "Specific action to take"
}`, seller.ShopName, seller.City, stats.ProductCount, stats.ContentCount, daysSince)
}
