package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"sellerboost-api/internal/events"
	"sellerboost-api/internal/flyer"
	"sellerboost-api/internal/llm"
	"sellerboost-api/internal/model"
	"sellerboost-api/internal/repository"
)

func strPtr(s string) *string { return &s }

func testSeller() model.Seller {
	return model.Seller{
		ID:            "seller-1",
		UserID:        "user_1",
		Name:          "Ama Mensah",
		Phone:         "+233 24 000 0000",
		ShopName:      "Ama's Fabrics",
		City:          "Accra",
		PreferredTone: "Friendly",
	}
}

func testProduct() model.Product {
	return model.Product{
		ID:          "product-1",
		SellerID:    "seller-1",
		ProductName: "African Print Dress",
		Price:       150,
	}
}

// fakeStore is an in-memory RecordStore with spy flags.
type fakeStore struct {
	mu sync.Mutex

	pc         *model.ProductContext
	loadErr    error
	insertErr  error
	seller     *model.Seller
	sellerErr  error
	products   int64
	contents   int64
	countErr   error
	records    []*model.ContentRecord
	listErr    error
	loadCalled bool

	insertCalled bool
	inserted     *model.ContentRecord
}

var _ repository.RecordStore = (*fakeStore)(nil)

func (f *fakeStore) LoadProductContext(ctx context.Context, productID, userID string) (*model.ProductContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalled = true
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.pc == nil || f.pc.Product.ID != productID || f.pc.Seller.UserID != userID {
		return nil, fmt.Errorf("product %s: %w", productID, repository.ErrNotFound)
	}
	pc := *f.pc
	return &pc, nil
}

func (f *fakeStore) InsertContent(ctx context.Context, rec *model.ContentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalled = true
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = rec
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeStore) GetSellerByUserID(ctx context.Context, userID string) (*model.Seller, error) {
	if f.sellerErr != nil {
		return nil, f.sellerErr
	}
	if f.seller == nil || f.seller.UserID != userID {
		return nil, fmt.Errorf("seller for user %s: %w", userID, repository.ErrNotFound)
	}
	s := *f.seller
	return &s, nil
}

func (f *fakeStore) CountProducts(ctx context.Context, sellerID string) (int64, error) {
	return f.products, f.countErr
}

func (f *fakeStore) CountContent(ctx context.Context, sellerID string) (int64, error) {
	return f.contents, f.countErr
}

func (f *fakeStore) ListContent(ctx context.Context, productID string, limit int) ([]*model.ContentRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*model.ContentRecord, 0)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].ProductID == productID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeStore) LatestContent(ctx context.Context, productID string) (*model.ContentRecord, error) {
	list, err := f.ListContent(ctx, productID, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("content for product %s: %w", productID, repository.ErrNotFound)
	}
	return list[0], nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                   { return nil }

// fakeText is a scripted TextGenerator.
type fakeText struct {
	configured bool
	response   string
	err        error
	calls      []llm.ChatRequest
}

func (f *fakeText) Configured() bool { return f.configured }

func (f *fakeText) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeFlyers returns a fixed Result.
type fakeFlyers struct {
	result  flyer.Result
	prompts []string
}

func (f *fakeFlyers) Produce(ctx context.Context, productID, prompt string) flyer.Result {
	f.prompts = append(f.prompts, prompt)
	if prompt == "" {
		return flyer.Result{}
	}
	return f.result
}

type fakePublisher struct {
	events []events.ContentGenerated
	err    error
}

func (f *fakePublisher) PublishContentGenerated(ctx context.Context, evt events.ContentGenerated) error {
	f.events = append(f.events, evt)
	return f.err
}

func validContentJSON(flyerPrompt string) string {
	doc := map[string]any{
		"facebook":    map[string]any{"posts": []string{"Post A", "Post B"}, "hashtags": []string{"#Accra"}, "bestTime": "7:00 PM"},
		"instagram":   map[string]any{"captions": []string{"c"}, "reels": []string{"r"}, "stories": []string{"s"}, "hashtags": []string{"#ig"}, "bestTime": "8:00 PM"},
		"whatsapp":    map[string]any{"statusUpdates": []string{"Status"}, "broadcastMessages": []string{"b"}, "quickReplies": []string{"Yes, available"}, "bestTime": "12:00 PM"},
		"tiktok":      map[string]any{"videoScripts": []string{"v"}, "hooks": []string{"h"}, "hashtags": []string{"#tt"}, "trends": "t", "bestTime": "9:00 PM"},
		"youtube":     map[string]any{"videoIdeas": []string{"i"}, "descriptions": []string{"d"}, "thumbnailTips": "tip", "hashtags": []string{"#yt"}, "bestTime": "6:00 PM"},
		"strategy":    "Post every evening",
		"flyerPrompt": flyerPrompt,
	}
	b, _ := json.Marshal(doc)
	return string(b)
}
