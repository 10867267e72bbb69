package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// FacebookContent is the Facebook platform payload.
type FacebookContent struct {
	Posts    []string `json:"posts" bson:"posts"`
	Hashtags []string `json:"hashtags" bson:"hashtags"`
	BestTime string   `json:"bestTime" bson:"bestTime"`
}

// InstagramContent is the Instagram platform payload.
type InstagramContent struct {
	Captions []string `json:"captions" bson:"captions"`
	Reels    []string `json:"reels" bson:"reels"`
	Stories  []string `json:"stories" bson:"stories"`
	Hashtags []string `json:"hashtags" bson:"hashtags"`
	BestTime string   `json:"bestTime" bson:"bestTime"`
}

// WhatsAppContent is the WhatsApp platform payload.
type WhatsAppContent struct {
	StatusUpdates     []string `json:"statusUpdates" bson:"statusUpdates"`
	BroadcastMessages []string `json:"broadcastMessages" bson:"broadcastMessages"`
	QuickReplies      []string `json:"quickReplies" bson:"quickReplies"`
	BestTime          string   `json:"bestTime" bson:"bestTime"`
}

// TikTokContent is the TikTok platform payload.
type TikTokContent struct {
	VideoScripts []string `json:"videoScripts" bson:"videoScripts"`
	Hooks        []string `json:"hooks" bson:"hooks"`
	Hashtags     []string `json:"hashtags" bson:"hashtags"`
	Trends       string   `json:"trends" bson:"trends"`
	BestTime     string   `json:"bestTime" bson:"bestTime"`
}

// YouTubeContent is the YouTube platform payload.
type YouTubeContent struct {
	VideoIdeas    []string `json:"videoIdeas" bson:"videoIdeas"`
	Descriptions  []string `json:"descriptions" bson:"descriptions"`
	ThumbnailTips string   `json:"thumbnailTips" bson:"thumbnailTips"`
	Hashtags      []string `json:"hashtags" bson:"hashtags"`
	BestTime      string   `json:"bestTime" bson:"bestTime"`
}

// GeneratedContent is the validated output of the text model.
type GeneratedContent struct {
	Facebook    FacebookContent  `json:"facebook"`
	Instagram   InstagramContent `json:"instagram"`
	WhatsApp    WhatsAppContent  `json:"whatsapp"`
	TikTok      TikTokContent    `json:"tiktok"`
	YouTube     YouTubeContent   `json:"youtube"`
	Strategy    string           `json:"strategy"`
	FlyerPrompt string           `json:"flyerPrompt"`
}

// ContentRecord is one persisted generation. Captions, WhatsAppLines and DMReplies
// are JSON-encoded copies of platform sub-arrays kept for older readers.
type ContentRecord struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	SellerID         string           `json:"seller_id"`
	DateGenerated    time.Time        `json:"date_generated"`
	FacebookContent  FacebookContent  `json:"facebook_content"`
	InstagramContent InstagramContent `json:"instagram_content"`
	WhatsAppContent  WhatsAppContent  `json:"whatsapp_content"`
	TikTokContent    TikTokContent    `json:"tiktok_content"`
	YouTubeContent   YouTubeContent   `json:"youtube_content"`
	Strategy         string           `json:"strategy"`
	PostingHour      string           `json:"posting_hour"`
	FlyerImageURL    *string          `json:"flyer_image_url"`
	Captions         string           `json:"captions"`
	WhatsAppLines    string           `json:"whatsapp_lines"`
	DMReplies        string           `json:"dm_replies"`
}

// NewContentRecord assembles a record from validated content. The platform payloads
// are copied as-is; only the legacy fields are derived.
func NewContentRecord(id string, pc *ProductContext, gc *GeneratedContent, flyerURL *string, now time.Time) (*ContentRecord, error) {
	captions, err := encodeLines(gc.Facebook.Posts)
	if err != nil {
		return nil, fmt.Errorf("encode captions: %w", err)
	}
	statusLines, err := encodeLines(gc.WhatsApp.StatusUpdates)
	if err != nil {
		return nil, fmt.Errorf("encode whatsapp lines: %w", err)
	}
	replies, err := encodeLines(gc.WhatsApp.QuickReplies)
	if err != nil {
		return nil, fmt.Errorf("encode dm replies: %w", err)
	}

	return &ContentRecord{
		ID:               id,
		ProductID:        pc.Product.ID,
		SellerID:         pc.Product.SellerID,
		DateGenerated:    now.UTC(),
		FacebookContent:  gc.Facebook,
		InstagramContent: gc.Instagram,
		WhatsAppContent:  gc.WhatsApp,
		TikTokContent:    gc.TikTok,
		YouTubeContent:   gc.YouTube,
		Strategy:         gc.Strategy,
		PostingHour:      gc.Facebook.BestTime,
		FlyerImageURL:    flyerURL,
		Captions:         captions,
		WhatsAppLines:    statusLines,
		DMReplies:        replies,
	}, nil
}

// encodeLines serializes a string slice, writing [] for nil.
func encodeLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
