package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sellerboost-api/internal/content"
	"sellerboost-api/internal/events"
	"sellerboost-api/internal/flyer"
	"sellerboost-api/internal/llm"
	"sellerboost-api/internal/model"
	"sellerboost-api/internal/prompt"
	"sellerboost-api/internal/repository"
	"sellerboost-api/pkg/apierror"
	"sellerboost-api/pkg/uid"
)

const (
	MessageWithFlyer    = "Detailed content and flyer image generated successfully"
	MessageWithoutFlyer = "Content generated successfully; flyer image is not available"
)

// TextGenerator is a chat-completion model.
type TextGenerator interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
	Configured() bool
}

// FlyerProducer runs the best-effort flyer step.
type FlyerProducer interface {
	Produce(ctx context.Context, productID, prompt string) flyer.Result
}

// ModelSettings selects the model and sampling temperature for one pipeline.
type ModelSettings struct {
	Model       string
	Temperature float64
}

// GenerationResult is what the content endpoint returns on success.
type GenerationResult struct {
	ContentID     string  `json:"contentId"`
	FlyerImageURL *string `json:"flyerImageUrl"`
	Message       string  `json:"message"`
}

// GenerationService runs the content pipeline: load, prompt, generate,
// validate, flyer, persist. Steps run strictly in order within a request.
type GenerationService struct {
	store     repository.RecordStore
	text      TextGenerator
	flyers    FlyerProducer
	publisher events.Publisher
	settings  ModelSettings
	newID     func() string
	now       func() time.Time
}

// NewGenerationService creates a generation service. A nil publisher disables events.
func NewGenerationService(
	store repository.RecordStore,
	text TextGenerator,
	flyers FlyerProducer,
	publisher events.Publisher,
	settings ModelSettings,
) *GenerationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GenerationService{
		store:     store,
		text:      text,
		flyers:    flyers,
		publisher: publisher,
		settings:  settings,
		newID:     uid.New,
		now:       time.Now,
	}
}

// Generate produces and stores content for productID on behalf of principal.
func (s *GenerationService) Generate(ctx context.Context, principal *model.Principal, productID string) (*GenerationResult, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, logStage(ctx, "request", apierror.BadRequest("Product ID required"))
	}

	pc, err := s.store.LoadProductContext(ctx, productID, principal.UserID)
	if err != nil {
		return nil, logStage(ctx, "load_context", apierror.NotFoundCause("Product not found: ", err))
	}
	if !pc.Consistent() {
		return nil, logStage(ctx, "load_context", apierror.NotFound("Product does not exist"))
	}

	slog.DebugContext(ctx, "product loaded",
		"product_id", pc.Product.ID,
		"shop", pc.Seller.ShopName,
		"has_image", pc.Product.ImageURL != nil,
		"has_logo", pc.Seller.HasLogo(),
	)

	if !s.text.Configured() {
		return nil, logStage(ctx, "config", apierror.Configuration("OpenAI API key not configured in backend"))
	}

	prompts := prompt.BuildContent(pc.Product, pc.Seller)

	raw, err := s.text.Complete(ctx, llm.ChatRequest{
		Model:       s.settings.Model,
		System:      prompts.System,
		User:        prompts.User,
		Temperature: s.settings.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, logStage(ctx, "text_generation", upstreamError("OpenAI API error: ", err))
	}

	generated, err := content.Parse(raw)
	if err != nil {
		return nil, logStage(ctx, "validate", err)
	}

	fl := s.flyers.Produce(ctx, pc.Product.ID, generated.FlyerPrompt)

	rec, err := model.NewContentRecord(s.newID(), pc, generated, fl.URL, s.now())
	if err != nil {
		return nil, logStage(ctx, "persist", apierror.Internal("Failed to assemble content: ", err))
	}

	if err := s.store.InsertContent(ctx, rec); err != nil {
		return nil, logStage(ctx, "persist", apierror.Persistence("Failed to save content: ", err))
	}

	slog.InfoContext(ctx, "content generated",
		"content_id", rec.ID,
		"product_id", rec.ProductID,
		"has_flyer", fl.Available(),
	)

	s.publish(ctx, rec, fl.Available())

	msg := MessageWithoutFlyer
	if fl.Available() {
		msg = MessageWithFlyer
	}

	return &GenerationResult{
		ContentID:     rec.ID,
		FlyerImageURL: fl.URL,
		Message:       msg,
	}, nil
}

func (s *GenerationService) publish(ctx context.Context, rec *model.ContentRecord, hasFlyer bool) {
	err := s.publisher.PublishContentGenerated(ctx, events.ContentGenerated{
		ContentID:   rec.ID,
		ProductID:   rec.ProductID,
		SellerID:    rec.SellerID,
		HasFlyer:    hasFlyer,
		GeneratedAt: rec.DateGenerated,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish content event", "stage", "publish", "content_id", rec.ID, "error", err)
	}
}

// upstreamError maps a model client error to the error taxonomy.
func upstreamError(prefix string, err error) *apierror.Error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return apierror.Configuration("OpenAI API key not configured in backend")
	}
	return apierror.Upstream(prefix, err)
}

// logStage logs err with its pipeline stage and returns it unchanged.
func logStage(ctx context.Context, stage string, err error) error {
	level := slog.LevelError
	code := apierror.KindInternal
	if apiErr, ok := apierror.As(err); ok {
		code = apiErr.Kind
		switch code {
		case apierror.KindBadRequest, apierror.KindNotFound:
			level = slog.LevelWarn
		}
	}
	slog.Log(ctx, level, "pipeline step failed", "stage", stage, "code", string(code), "error", err)
	return err
}
