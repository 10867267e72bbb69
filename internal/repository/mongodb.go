package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sellerboost-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sellersCollection  = "sellers"
	productsCollection = "products"
	contentCollection  = "generated_content"
)

// MongoStore implements RecordStore using MongoDB.
type MongoStore struct {
	client   *mongo.Client
	sellers  *mongo.Collection
	products *mongo.Collection
	content  *mongo.Collection
}

var (
	_ RecordStore   = (*MongoStore)(nil)
	_ CatalogWriter = (*MongoStore)(nil)
)

// NewMongoStore connects to MongoDB and ensures indexes.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := newMongoStore(client, client.Database(database))
	store.ensureIndexes(connectCtx)

	slog.Info("record store initialized", "dialect", "mongodb", "database", database)
	return store, nil
}

func newMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:   client,
		sellers:  db.Collection(sellersCollection),
		products: db.Collection(productsCollection),
		content:  db.Collection(contentCollection),
	}
}

func (r *MongoStore) ensureIndexes(ctx context.Context) {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{r.sellers, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{r.products, mongo.IndexModel{Keys: bson.D{{Key: "seller_id", Value: 1}}}},
		{r.content, mongo.IndexModel{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "date_generated", Value: -1}}}},
		{r.content, mongo.IndexModel{Keys: bson.D{{Key: "seller_id", Value: 1}}}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			slog.Warn("failed to create index", "collection", idx.coll.Name(), "error", err)
		}
	}
}

type sellerDocument struct {
	ID            string     `bson:"_id"`
	UserID        string     `bson:"user_id"`
	Name          string     `bson:"name"`
	Phone         string     `bson:"phone"`
	ShopName      string     `bson:"shop_name"`
	City          string     `bson:"city"`
	PreferredTone string     `bson:"preferred_tone"`
	LogoURL       *string    `bson:"logo_url,omitempty"`
	LastPostedAt  *time.Time `bson:"last_posted_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
}

func (d *sellerDocument) toModel() model.Seller {
	return model.Seller{
		ID:            d.ID,
		UserID:        d.UserID,
		Name:          d.Name,
		Phone:         d.Phone,
		ShopName:      d.ShopName,
		City:          d.City,
		PreferredTone: d.PreferredTone,
		LogoURL:       d.LogoURL,
		LastPostedAt:  d.LastPostedAt,
		CreatedAt:     d.CreatedAt,
	}
}

type productDocument struct {
	ID          string           `bson:"_id"`
	SellerID    string           `bson:"seller_id"`
	ProductName string           `bson:"product_name"`
	Price       float64          `bson:"price"`
	Description *string          `bson:"description,omitempty"`
	ImageURL    *string          `bson:"image_url,omitempty"`
	CreatedAt   time.Time        `bson:"created_at"`
	Sellers     []sellerDocument `bson:"seller,omitempty"`
}

type contentDocument struct {
	ID               string                 `bson:"_id"`
	ProductID        string                 `bson:"product_id"`
	SellerID         string                 `bson:"seller_id"`
	DateGenerated    time.Time              `bson:"date_generated"`
	FacebookContent  model.FacebookContent  `bson:"facebook_content"`
	InstagramContent model.InstagramContent `bson:"instagram_content"`
	WhatsAppContent  model.WhatsAppContent  `bson:"whatsapp_content"`
	TikTokContent    model.TikTokContent    `bson:"tiktok_content"`
	YouTubeContent   model.YouTubeContent   `bson:"youtube_content"`
	Strategy         string                 `bson:"strategy"`
	PostingHour      string                 `bson:"posting_hour"`
	FlyerImageURL    *string                `bson:"flyer_image_url"`
	Captions         string                 `bson:"captions"`
	WhatsAppLines    string                 `bson:"whatsapp_lines"`
	DMReplies        string                 `bson:"dm_replies"`
}

func (d *contentDocument) toModel() *model.ContentRecord {
	return &model.ContentRecord{
		ID:               d.ID,
		ProductID:        d.ProductID,
		SellerID:         d.SellerID,
		DateGenerated:    d.DateGenerated,
		FacebookContent:  d.FacebookContent,
		InstagramContent: d.InstagramContent,
		WhatsAppContent:  d.WhatsAppContent,
		TikTokContent:    d.TikTokContent,
		YouTubeContent:   d.YouTubeContent,
		Strategy:         d.Strategy,
		PostingHour:      d.PostingHour,
		FlyerImageURL:    d.FlyerImageURL,
		Captions:         d.Captions,
		WhatsAppLines:    d.WhatsAppLines,
		DMReplies:        d.DMReplies,
	}
}

// LoadProductContext joins the product with its seller through $lookup and
// keeps the result only when the seller belongs to userID.
func (r *MongoStore) LoadProductContext(ctx context.Context, productID, userID string) (*model.ProductContext, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": productID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         sellersCollection,
			"localField":   "seller_id",
			"foreignField": "_id",
			"as":           "seller",
		}}},
		{{Key: "$match", Value: bson.M{"seller.user_id": userID}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	var doc productDocument
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	if len(doc.Sellers) == 0 {
		return nil, fmt.Errorf("seller for product %s: %w", productID, ErrNotFound)
	}

	return &model.ProductContext{
		Product: model.Product{
			ID:          doc.ID,
			SellerID:    doc.SellerID,
			ProductName: doc.ProductName,
			Price:       doc.Price,
			Description: doc.Description,
			ImageURL:    doc.ImageURL,
			CreatedAt:   doc.CreatedAt,
		},
		Seller: doc.Sellers[0].toModel(),
	}, nil
}

// InsertContent inserts one content document.
func (r *MongoStore) InsertContent(ctx context.Context, rec *model.ContentRecord) error {
	doc := contentDocument{
		ID:               rec.ID,
		ProductID:        rec.ProductID,
		SellerID:         rec.SellerID,
		DateGenerated:    rec.DateGenerated.UTC(),
		FacebookContent:  rec.FacebookContent,
		InstagramContent: rec.InstagramContent,
		WhatsAppContent:  rec.WhatsAppContent,
		TikTokContent:    rec.TikTokContent,
		YouTubeContent:   rec.YouTubeContent,
		Strategy:         rec.Strategy,
		PostingHour:      rec.PostingHour,
		FlyerImageURL:    rec.FlyerImageURL,
		Captions:         rec.Captions,
		WhatsAppLines:    rec.WhatsAppLines,
		DMReplies:        rec.DMReplies,
	}

	if _, err := r.content.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// GetSellerByUserID returns the seller bound to userID.
func (r *MongoStore) GetSellerByUserID(ctx context.Context, userID string) (*model.Seller, error) {
	var doc sellerDocument
	err := r.sellers.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("seller for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}

	s := doc.toModel()
	return &s, nil
}

// CountProducts counts the seller's products.
func (r *MongoStore) CountProducts(ctx context.Context, sellerID string) (int64, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{"seller_id": sellerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// CountContent counts the seller's content records.
func (r *MongoStore) CountContent(ctx context.Context, sellerID string) (int64, error) {
	n, err := r.content.CountDocuments(ctx, bson.M{"seller_id": sellerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return n, nil
}

// ListContent returns up to limit records for productID, newest first.
func (r *MongoStore) ListContent(ctx context.Context, productID string, limit int) ([]*model.ContentRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date_generated", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.content.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []contentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	records := make([]*model.ContentRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toModel())
	}
	return records, nil
}

// LatestContent returns the newest record for productID.
func (r *MongoStore) LatestContent(ctx context.Context, productID string) (*model.ContentRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date_generated", Value: -1}})

	var doc contentDocument
	err := r.content.FindOne(ctx, bson.M{"product_id": productID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("content for product %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest content: %w", err)
	}
	return doc.toModel(), nil
}

// CreateSeller inserts a seller document.
func (r *MongoStore) CreateSeller(ctx context.Context, s *model.Seller) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	doc := sellerDocument{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		Phone:         s.Phone,
		ShopName:      s.ShopName,
		City:          s.City,
		PreferredTone: s.PreferredTone,
		LogoURL:       s.LogoURL,
		LastPostedAt:  s.LastPostedAt,
		CreatedAt:     s.CreatedAt,
	}
	if _, err := r.sellers.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create seller: %w", err)
	}
	return nil
}

// CreateProduct inserts a product document.
func (r *MongoStore) CreateProduct(ctx context.Context, p *model.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	doc := productDocument{
		ID:          p.ID,
		SellerID:    p.SellerID,
		ProductName: p.ProductName,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if _, err := r.products.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Ping checks the MongoDB connection.
func (r *MongoStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}
