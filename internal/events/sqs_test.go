package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSQSPublisher(t *testing.T) {
	fake := &fakeSQS{}
	p := &SQSPublisher{client: fake, queueURL: "https://sqs.eu-west-1.amazonaws.com/123/content"}

	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	err := p.PublishContentGenerated(context.Background(), ContentGenerated{
		ContentID:   "c1",
		ProductID:   "p1",
		SellerID:    "s1",
		HasFlyer:    true,
		GeneratedAt: at,
	})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "https://sqs.eu-west-1.amazonaws.com/123/content", aws.ToString(fake.input.QueueUrl))
	assert.Equal(t, ContentGeneratedType, aws.ToString(fake.input.MessageAttributes["type"].StringValue))

	var evt ContentGenerated
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(fake.input.MessageBody)), &evt))
	assert.Equal(t, ContentGeneratedType, evt.Type)
	assert.Equal(t, "c1", evt.ContentID)
	assert.True(t, evt.HasFlyer)
	assert.True(t, evt.GeneratedAt.Equal(at))
}

func TestSQSPublisher_Error(t *testing.T) {
	p := &SQSPublisher{client: &fakeSQS{err: errors.New("throttled")}, queueURL: "q"}
	err := p.PublishContentGenerated(context.Background(), ContentGenerated{ContentID: "c1"})
	assert.ErrorContains(t, err, "throttled")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishContentGenerated(context.Background(), ContentGenerated{}))
}
