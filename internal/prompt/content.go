// Package prompt renders the text-model prompts. Every function here is pure:
// identical inputs always yield byte-identical prompts.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"sellerboost-api/internal/model"
)

// OutputSchema is embedded verbatim in the system prompt so the model output is
// self-describing. Keep it in sync with content/schema/generated_content.schema.json.
const OutputSchema = `{
  "facebook": {
    "posts": ["detailed engaging post 1 (150-200 words)", "post 2", "post 3"],
    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5"],
    "bestTime": "Best posting time"
  },
  "instagram": {
    "captions": ["detailed caption 1 (100-150 words)", "caption 2", "caption 3"],
    "reels": ["detailed reel script 1", "script 2"],
    "stories": ["story idea 1", "story 2", "story 3"],
    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5", "#hashtag6", "#hashtag7", "#hashtag8", "#hashtag9", "#hashtag10"],
    "bestTime": "Best posting time"
  },
  "whatsapp": {
    "statusUpdates": ["detailed status 1", "status 2", "status 3"],
    "broadcastMessages": ["detailed broadcast 1 (100+ words)", "broadcast 2"],
    "quickReplies": ["detailed reply 1", "reply 2", "reply 3"],
    "bestTime": "Best posting time"
  },
  "tiktok": {
    "videoScripts": ["detailed script 1 with timestamps", "script 2"],
    "hooks": ["hook 1", "hook 2", "hook 3"],
    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5", "#hashtag6"],
    "trends": "Current trending sounds/challenges",
    "bestTime": "Best posting time"
  },
  "youtube": {
    "videoIdeas": ["detailed video idea 1", "idea 2", "idea 3"],
    "descriptions": ["SEO-optimized description 1 (200+ words)", "description 2"],
    "thumbnailTips": "Thumbnail design guidance",
    "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5"],
    "bestTime": "Best upload time"
  },
  "strategy": "Comprehensive weekly cross-platform strategy (200+ words)",
  "flyerPrompt": "Detailed image-model prompt for generating a professional sales flyer image"
}`

const (
	noDescription = "No description provided"
	logoPalette   = "Incorporate vibrant colors that complement the business logo (use modern African/Ghanaian color palettes - greens, golds, oranges, reds)"
	flagPalette   = "Ghana flag colors (green, gold, red) or vibrant African color palette"
)

// Content holds the two prompts for one generation request.
type Content struct {
	System string
	User   string
}

// FormatPrice renders a price the way sellers write it, e.g. GH₵150 or GH₵149.5.
func FormatPrice(price float64) string {
	return "GH₵" + strconv.FormatFloat(price, 'f', -1, 64)
}

// BuildContent renders the system and user prompts for a product and its seller.
func BuildContent(product model.Product, seller model.Seller) Content {
	return Content{
		System: buildSystem(seller),
		User:   buildUser(product, seller),
	}
}

func buildSystem(seller model.Seller) string {
	var b strings.Builder

	b.WriteString(`You are a professional Ghanaian sales and marketing expert specializing in small business promotion across multiple social media platforms. You deeply understand:
- MoMo (Mobile Money) payment culture and trust-building
- Ghanaian English expressions and local communication styles
- Creating urgency without being pushy
- Building customer trust in competitive markets
- Platform-specific content strategies (Facebook, Instagram, WhatsApp, TikTok, YouTube)
- Viral hashtag trends and platform-specific hashtag optimization
- Professional graphic design principles for sales materials
- Understanding buyer psychology in Ghana's urban and peri-urban markets

Your task is to generate compelling, platform-specific sales content.

`)
	fmt.Fprintf(&b, "Generate content with a %s tone for a business in %s.\n\n", seller.PreferredTone, seller.City)
	b.WriteString("CRITICAL: Return ONLY a valid JSON object (no markdown, no code blocks). Use this EXACT structure:\n\n")
	b.WriteString(OutputSchema)

	return b.String()
}

func buildUser(product model.Product, seller model.Seller) string {
	description := noDescription
	if product.Description != nil && strings.TrimSpace(*product.Description) != "" {
		description = *product.Description
	}

	palette := flagPalette
	if seller.HasLogo() {
		palette = logoPalette
	}

	price := FormatPrice(product.Price)

	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\nPrice: %s\nDescription: %s\nShop: %s\nCity: %s\n\n",
		product.ProductName, price, description, seller.ShopName, seller.City)

	b.WriteString(`Generate DETAILED platform-specific sales content:

1. FACEBOOK:
   - 3 DETAILED engaging posts (150-200 words each) with emojis, storytelling, CTAs, MoMo payment mentions, urgency
   - 5 trending/relevant hashtags
   - Best posting time

2. INSTAGRAM:
   - 3 DETAILED captions (100-150 words) optimized for engagement with emojis and hooks
   - 2 Instagram Reels video scripts (30-45 seconds) with detailed actions, transitions, text overlays
   - 3 Story ideas with interactive elements (polls, questions, countdown)
   - 10 hashtags (mix of trending and niche)
   - Best posting time

3. WHATSAPP:
   - 3 status update texts with emojis and hooks
   - 2 DETAILED broadcast message templates (100+ words) for promotions with full sales pitch
   - 3 quick reply scripts for common customer questions (price, availability, delivery, payment)
   - Best posting time

4. TIKTOK:
   - 2 DETAILED video scripts (30-60 seconds) with timestamps, actions, dialogue, transitions
   - 3 attention-grabbing hooks/openers
   - 6 viral hashtags
   - Current trend ideas to leverage for this product
   - Best posting time

5. YOUTUBE:
   - 3 video title ideas (SEO-optimized, clickbait but honest)
   - 2 DETAILED video descriptions (200+ words) with keywords, timestamps, links, CTAs
   - Thumbnail design tips
   - 5 relevant hashtags
   - Best upload time

6. COMPREHENSIVE cross-platform strategy (200+ words):
   - Weekly content calendar
   - How to repurpose content across platforms
   - Engagement tactics
   - MoMo payment trust-building
   - Customer retention tips

7. FLYER IMAGE GENERATION PROMPT:
   Create a detailed image-model prompt for generating a professional, eye-catching sales flyer image (1024x1024px square format for social media) that MUST include:
`)
	fmt.Fprintf(&b, "   - Product name: %s\n", product.ProductName)
	fmt.Fprintf(&b, "   - Price: %s\n", price)
	fmt.Fprintf(&b, "   - Shop name: %s\n", seller.ShopName)
	fmt.Fprintf(&b, "   - Seller contact: %s - %s\n", seller.Name, seller.Phone)
	fmt.Fprintf(&b, "   - %s\n", palette)
	b.WriteString(`   - Modern, professional design optimized for Instagram, Facebook, WhatsApp
   - Bold, readable typography
   - Eye-catching layout with clear visual hierarchy
   - MoMo payment acceptance message
   - Call-to-action elements
   - Professional but approachable aesthetic
   - Mobile-friendly design (readable on small screens)

The prompt should be detailed enough to generate a complete, ready-to-use sales flyer with ALL contact information clearly visible.

MAKE ALL POSTS DETAILED, PERSUASIVE, AND SALES-FOCUSED. Include specific Ghanaian cultural references, MoMo payment mentions, local buyer concerns, and trust-building language.`)

	return b.String()
}
