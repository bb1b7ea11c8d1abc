package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// BedrockProvider streams suggestions via AWS Bedrock's ConverseStream
// API. Grounded on original_source/src/ai/provider/async_bedrock.rs: same
// region/model/profile configuration shape, same "build client, issue
// ConverseStream, forward ContentBlockDelta::Text chunks" flow. The
// original's catch_unwind around AWS SDK credential loading (documented
// there as a known panic source) is the origin of Worker.run's recover()
// wrapper in worker.go — Go's aws-sdk-go-v2 doesn't panic in the same
// spot, but the same defensive boundary is kept since the SDK family is
// shared and the original's own comment calls this out explicitly.
type BedrockProvider struct {
	Region  string
	Model   string
	Profile string
}

// Stream implements Provider.
func (b *BedrockProvider) Stream(prompt string, tok *CancelToken, out chan<- Event) error {
	defer close(out)

	if b.Region == "" || b.Model == "" {
		out <- Event{Kind: EventError, ErrKind: ErrNotConfigured, Err: "Bedrock region or model not configured"}
		return nil
	}

	client, err := b.buildClient(tok.Context())
	if err != nil {
		out <- Event{Kind: EventError, ErrKind: ErrAwsSDK, Err: err.Error()}
		return err
	}

	resp, err := client.ConverseStream(tok.Context(), &bedrockruntime.ConverseStreamInput{
		ModelId: aws.String(b.Model),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
	})
	if err != nil {
		if tok.Cancelled() {
			out <- Event{Kind: EventCancelled}
			return nil
		}
		kind, msg := classifyBedrockError(err)
		out <- Event{Kind: EventError, ErrKind: kind, Err: msg}
		return err
	}

	stream := resp.GetStream()
	defer stream.Close()

	for {
		if tok.PollCancelledFirst() {
			out <- Event{Kind: EventCancelled}
			return nil
		}
		select {
		case <-tok.Context().Done():
			out <- Event{Kind: EventCancelled}
			return nil
		case ev, ok := <-stream.Events():
			if !ok {
				if err := stream.Err(); err != nil {
					out <- Event{Kind: EventError, ErrKind: ErrAwsSDK, Err: err.Error()}
					return err
				}
				out <- Event{Kind: EventComplete}
				return nil
			}
			if done := handleBedrockEvent(ev, out); done {
				return nil
			}
		}
	}
}

func handleBedrockEvent(ev types.ConverseStreamOutput, out chan<- Event) bool {
	switch v := ev.(type) {
	case *types.ConverseStreamOutputMemberContentBlockDelta:
		if textDelta, ok := v.Value.Delta.(*types.ContentBlockDeltaMemberText); ok && textDelta.Value != "" {
			out <- Event{Kind: EventChunk, Text: textDelta.Value}
		}
		return false
	case *types.ConverseStreamOutputMemberMessageStop:
		return false
	default:
		return false
	}
}

// buildClient loads AWS credentials (named profile or default chain) and
// wraps the whole thing in a recover() boundary: the original's Rust
// implementation documents AWS SDK credential discovery as a known panic
// source worth a catch_unwind, so the Go equivalent is defended the same
// way even though aws-sdk-go-v2 itself is better behaved.
func (b *BedrockProvider) buildClient(ctx context.Context) (client *bedrockruntime.Client, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("AWS SDK initialization panicked: %v", r)
		}
	}()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(b.Region),
	}
	if b.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(b.Profile))
	}

	cfg, cfgErr := awsconfig.LoadDefaultConfig(ctx, opts...)
	if cfgErr != nil {
		return nil, fmt.Errorf("loading AWS config: %w", cfgErr)
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

func classifyBedrockError(err error) (ErrorKind, string) {
	msg := err.Error()
	for _, needle := range []string{"credentials", "Credentials", "authentication", "UnauthorizedException"} {
		if strings.Contains(msg, needle) {
			return ErrNotConfigured, "AWS Bedrock credentials not configured: " + msg
		}
	}
	return ErrAwsSDK, msg
}
