package categorizer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements TagSuggester with the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger

	timeout time.Duration

	mu          sync.Mutex
	minInterval time.Duration
	lastRequest time.Time
}

// NewGeminiClient connects to Gemini with apiKey.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Name returns the strategy name used in logs and errors.
func (c *GeminiClient) Name() string {
	return "Gemini"
}

// SetRequestsPerMinute spaces requests so that at most n are sent per
// minute. A non-positive n removes the limit.
func (c *GeminiClient) SetRequestsPerMinute(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		c.minInterval = 0
		return
	}
	c.minInterval = time.Minute / time.Duration(n)
}

// SetTimeout bounds each request. Zero means no bound beyond the caller's
// context.
func (c *GeminiClient) SetTimeout(d time.Duration) {
	c.timeout = d
}

// wait blocks until the next request slot or until ctx is done.
func (c *GeminiClient) wait(ctx context.Context) error {
	c.mu.Lock()
	next := c.lastRequest.Add(c.minInterval)
	now := time.Now()
	if next.Before(now) {
		next = now
	}
	c.lastRequest = next
	c.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// SuggestTag asks the model to pick one tag for merchant. An answer outside
// the vocabulary yields TagNone.
func (c *GeminiClient) SuggestTag(ctx context.Context, merchant string) (models.Tag, error) {
	c.logger.Debug("Requesting Gemini tag suggestion",
		logging.Field{Key: logging.FieldOperation, Value: "gemini_suggest"},
		logging.Field{Key: logging.FieldMerchant, Value: merchant})

	if err := c.wait(ctx); err != nil {
		return models.TagNone, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(merchant)))
	if err != nil {
		return models.TagNone, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.TagNone, fmt.Errorf("gemini: empty response")
	}

	tag := ParseSuggestion(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	c.logger.Debug("Gemini tag suggestion",
		logging.Field{Key: logging.FieldMerchant, Value: merchant},
		logging.Field{Key: logging.FieldTag, Value: tag})
	return tag, nil
}

// BuildPrompt renders the single-answer prompt for merchant.
func BuildPrompt(merchant string) string {
	var b strings.Builder
	b.WriteString("You categorize household spending in Taiwan.\n")
	b.WriteString("Pick exactly one tag for the merchant below from this list ")
	b.WriteString("(slug: meaning in the ledger's own words):\n")
	for _, tag := range models.AllTags() {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", tag, tag.Label(), models.TagToClass(tag))
	}
	fmt.Fprintf(&b, "Merchant: %s\n", merchant)
	b.WriteString("Answer with the slug only. Answer no-tag if unsure.")
	return b.String()
}

// ParseSuggestion extracts a tag from a model answer.
func ParseSuggestion(answer string) models.Tag {
	fields := strings.Fields(strings.ToLower(answer))
	if len(fields) == 0 {
		return models.TagNone
	}
	slug := strings.Trim(fields[0], "`\"'.,:;*")
	tag, ok := models.ParseTag(slug)
	if !ok || tag == models.TagUnset {
		return models.TagNone
	}
	return tag
}
