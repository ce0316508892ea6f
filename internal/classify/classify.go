package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jdelgad/nudge/internal/capture"
	"github.com/jdelgad/nudge/internal/domain"
)

// defaultActionMinutes is assumed for actions the model leaves
// unestimated, keeping two-minute-rule scoring meaningful.
const defaultActionMinutes = 5

var validBuckets = map[string]bool{
	"action":  true,
	"project": true,
	"idea":    true,
	"blocked": true,
}

// Classification is the structured verdict extracted from model output.
type Classification struct {
	Content          string   `json:"content"`
	Bucket           string   `json:"bucket"`
	EstimatedMinutes *int     `json:"estimated_minutes"`
	Tags             []string `json:"tags"`
	BlockedOn        *string  `json:"blocked_on"`
}

// Validate checks that the classification is usable.
func (c *Classification) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("classification content is empty")
	}
	if !validBuckets[c.Bucket] {
		return fmt.Errorf("unknown bucket %q", c.Bucket)
	}
	if c.EstimatedMinutes != nil && *c.EstimatedMinutes <= 0 {
		return fmt.Errorf("estimated minutes must be positive, got %d", *c.EstimatedMinutes)
	}
	return nil
}

// ToRequest converts the classification into a capture request.
func (c *Classification) ToRequest(source string) capture.Request {
	req := capture.Request{
		RawContent:          c.Content,
		Status:              c.Bucket,
		BlockedBy:           valueOrEmpty(c.BlockedOn),
		CompleteTimeMinutes: c.EstimatedMinutes,
		Source:              source,
	}
	if len(c.Tags) > 0 {
		req.Tag = c.Tags[0]
	}
	if c.Bucket == "action" {
		req.CompleteTimeMinutes = domain.IntPtr(
			domain.IntFromPtrWithDefault(defaultActionMinutes, c.EstimatedMinutes))
	}
	return req
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const systemPrompt = `You sort a personal task capture into a bucket. Respond with a single JSON object and nothing else:
{"content": "<cleaned task text>", "bucket": "action|project|idea|blocked", "estimated_minutes": <int or null>, "tags": ["[DO IT]","[KEYSTONE]",...], "blocked_on": "<string or null>"}
Buckets: "action" is a single concrete next step, "project" needs multiple steps, "idea" is a someday/maybe thought, "blocked" is waiting on someone or something. Only include tags you are confident about.`

// Classifier drives capture classification through a model client.
type Classifier struct {
	client Client
}

// NewClassifier returns a classifier over the given client.
func NewClassifier(client Client) *Classifier {
	return &Classifier{client: client}
}

// Classify asks the model to sort one captured line. The returned
// classification is validated; garbage model output surfaces as
// ErrInvalidOutput.
func (c *Classifier) Classify(ctx context.Context, raw string) (*Classification, error) {
	text, err := c.client.Generate(ctx, systemPrompt, raw)
	if err != nil {
		return nil, err
	}
	return parseClassification(text)
}

func parseClassification(text string) (*Classification, error) {
	jsonStr := extractJSONBlock(stripCodeFences(text))
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result Classification
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return &result, nil
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
