// Package extraction calls the external natural-language service that turns
// chat transcripts into structured purchase records.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Minhaj401/invoice-generator-api/internal/config"
	"github.com/Minhaj401/invoice-generator-api/internal/domain/parser"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/metrics"
	"github.com/Minhaj401/invoice-generator-api/internal/infrastructure/observability"
)

const systemPrompt = "You are an expert at extracting purchase information from chat messages. " +
	"You always answer with a raw JSON array and nothing else."

const promptTemplate = `Analyze the following chat messages and extract all items being purchased.
For each item, identify:
- description: The product/service name
- quantity: How many units (default to 1 if not mentioned)
- unit_price: The price per unit

Chat messages:
%s

Return ONLY a valid JSON array with this exact structure (no markdown, no code blocks, just the JSON):
[
  {
    "description": "Product Name",
    "quantity": 2,
    "unit_price": 500.00
  }
]

Rules:
- If quantity is not mentioned, assume 1
- Extract price per unit, not total
- Messages are cumulative: a later message may change the quantity or price of an item mentioned earlier; merge them into one record
- Use descriptive item names
- Return empty array [] if no items found
- ONLY return the JSON array, no other text or explanation

JSON array:`

// Client implements parser.Extractor against an OpenAI-compatible endpoint.
type Client struct {
	api     *openai.Client
	service string
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.ExtractionAPIKey)
	clientConfig.BaseURL = cfg.ExtractionBaseURL

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		service: cfg.ServiceName,
		model:   cfg.ExtractionModel,
		timeout: cfg.ExtractionTimeout,
		log:     log.With().Str("component", "extraction-client").Logger(),
	}
}

// ExtractItems submits the whole transcript in one completion request and
// decodes the returned JSON array. Transport and upstream problems map to
// transient failure kinds; a response that does not conform to the schema is
// a non-retryable schema failure.
func (c *Client) ExtractItems(ctx context.Context, transcript []string) ([]parser.ExtractedItem, error) {
	ctx, span := observability.StartSpan(ctx, c.service, "extraction.items")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(transcript)},
		},
	})
	duration := time.Since(start).Seconds()

	if err != nil {
		kind := parser.FailureUpstream
		if errors.Is(err, context.DeadlineExceeded) {
			kind = parser.FailureTimeout
		}
		metrics.RecordExtraction(string(kind), duration)
		c.log.Error().Err(err).Str("kind", string(kind)).Msg("extraction call failed")
		return nil, &parser.ExtractionFailure{Kind: kind, Err: err}
	}

	if len(resp.Choices) == 0 {
		metrics.RecordExtraction(string(parser.FailureSchema), duration)
		return nil, &parser.ExtractionFailure{Kind: parser.FailureSchema, Err: errors.New("empty completion response")}
	}

	items, err := decodeItems(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RecordExtraction(string(parser.FailureSchema), duration)
		c.log.Error().Err(err).Msg("extraction response failed schema decode")
		return nil, &parser.ExtractionFailure{Kind: parser.FailureSchema, Err: err}
	}

	metrics.RecordExtraction("ok", duration)
	return items, nil
}

func buildPrompt(transcript []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(transcript, "\n"))
}

// decodeItems tolerates markdown fencing and stray prose around the array,
// but rejects anything that does not decode into the fixed record schema.
func decodeItems(content string) ([]parser.ExtractedItem, error) {
	payload := sanitize(content)
	if payload == "" {
		return nil, errors.New("response contains no JSON array")
	}

	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.UseNumber()

	var items []parser.ExtractedItem
	if err := decoder.Decode(&items); err != nil {
		return nil, errors.Join(errors.New("response is not a valid item array"), err)
	}
	return items, nil
}

func sanitize(content string) string {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return content[start : end+1]
}
