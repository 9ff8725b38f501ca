package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookline/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const extractionPrompt = `You extract appointment-booking attributes from one user message.
Reply with a single JSON object and nothing else. Fields (omit when absent):
  "intent": "booking" if the user wants to book something
  "service_type": one of %s
  "date": YYYY-MM-DD
  "time": HH:MM, 24-hour
  "duration_minutes": integer
  "email": email address
Message: %q`

// GeminiExtractor asks Gemini for a strict-JSON entity object. Any model
// or parse failure is returned as an error; callers treat that as an empty
// extraction.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiExtractor{model: model}, nil
}

func (g *GeminiExtractor) ExtractEntities(ctx context.Context, text string) (models.Entities, error) {
	prompt := fmt.Sprintf(extractionPrompt, strings.Join(models.ServiceCatalogue, ", "), text)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.Entities{}, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.Entities{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	var ents models.Entities
	if err := json.Unmarshal([]byte(stripFences(sb.String())), &ents); err != nil {
		return models.Entities{}, fmt.Errorf("gemini reply was not valid JSON: %w", err)
	}
	// Discard hallucinated service types; the catalogue is closed.
	if ents.ServiceType != "" && !models.KnownService(ents.ServiceType) {
		ents.ServiceType = ""
	}
	return ents, nil
}

// stripFences removes a markdown code fence the model sometimes wraps the
// JSON in despite the prompt.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
