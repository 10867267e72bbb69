package flyer

import (
	"context"
	"errors"
	"testing"
	"time"

	"sellerboost-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	generateErr error
	downloadErr error
	prompts     []string
	downloaded  []string
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "https://images.example.com/tmp.png", nil
}

func (f *fakeImages) Download(ctx context.Context, url string) ([]byte, string, error) {
	f.downloaded = append(f.downloaded, url)
	if f.downloadErr != nil {
		return nil, "", f.downloadErr
	}
	return []byte("png"), "image/png", nil
}

type fakeStore struct {
	putErr      error
	keys        []string
	contentType string
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	f.keys = append(f.keys, key)
	f.contentType = contentType
	return f.putErr
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func fixedClock(svc *Service) {
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
}

func TestProduce_Success(t *testing.T) {
	images := &fakeImages{}
	store := &fakeStore{}
	svc := NewService(images, store, "")
	fixedClock(svc)

	res := svc.Produce(context.Background(), "prod-1", "A vibrant flyer")

	require.True(t, res.Available())
	assert.NoError(t, res.Err)
	assert.Equal(t, "https://cdn.example.com/flyers/prod-1/1700000000123.png", *res.URL)
	assert.Equal(t, []string{"flyers/prod-1/1700000000123.png"}, store.keys)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, []string{"https://images.example.com/tmp.png"}, images.downloaded)
}

func TestProduce_EmptyPromptSkips(t *testing.T) {
	images := &fakeImages{}
	store := &fakeStore{}
	svc := NewService(images, store, "flyers")

	res := svc.Produce(context.Background(), "prod-1", "   ")

	assert.False(t, res.Available())
	assert.NoError(t, res.Err)
	assert.Empty(t, images.prompts)
	assert.Empty(t, store.keys)
}

func TestProduce_Failures(t *testing.T) {
	tests := []struct {
		name    string
		images  *fakeImages
		store   *fakeStore
		wantMsg string
	}{
		{"generation", &fakeImages{generateErr: errors.New("content policy")}, &fakeStore{}, "Image generation failed: content policy"},
		{"download", &fakeImages{downloadErr: errors.New("timeout")}, &fakeStore{}, "Image download failed: timeout"},
		{"upload", &fakeImages{}, &fakeStore{putErr: errors.New("bucket missing")}, "Failed to upload flyer image: bucket missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.images, tt.store, "flyers")

			res := svc.Produce(context.Background(), "prod-1", "A vibrant flyer")

			assert.False(t, res.Available())
			require.Error(t, res.Err)
			assert.True(t, apierror.IsKind(res.Err, apierror.KindAssetPipeline))
			assert.Equal(t, tt.wantMsg, res.Err.Error())
		})
	}
}

func TestKey_CustomPrefix(t *testing.T) {
	svc := NewService(&fakeImages{}, &fakeStore{}, "/assets/flyers/")
	assert.Equal(t, "assets/flyers/p9/1000.png", svc.Key("p9", time.UnixMilli(1000)))
}
