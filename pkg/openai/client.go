package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mkarpov/pantrypal/pkg/freshness"
	"github.com/mkarpov/pantrypal/pkg/logger"
	"github.com/mkarpov/pantrypal/pkg/models"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New(""),
	}
}

// parsedItem is the wire shape the LLM is asked to return for pantry items
type parsedItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Expiration string  `json:"expiration"`
}

// ParseItemsFromText extracts structured pantry items from free-form text
// such as "2l milk exp 2025-04-01, a dozen eggs, salt".
func (c *Client) ParseItemsFromText(text string) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are a pantry assistant. Extract all food items from the following text.
Return only a JSON array, no other text, in this format:
[{"name": "milk", "quantity": 2, "unit": "l", "expiration": "2025-04-01"}]
Use an empty string for unknown expiration dates and 0 for unknown quantities.

Text: %s
`, text)

	c.logger.Info("Parsing pantry items from text")
	c.logger.Debug("Text to parse (first 100 chars): %s", truncateString(text, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	// Clean up the response - sometimes the model returns markdown code blocks
	content = cleanJSONResponse(content)

	var parsed []parsedItem
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(parsed))
	for _, p := range parsed {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		item := models.InventoryItem{
			Name:     p.Name,
			Quantity: p.Quantity,
			Unit:     p.Unit,
		}
		// Unparsable expiration dates are dropped: the item then classifies
		// as unknown instead of failing the whole parse
		if exp, ok := freshness.ParseDate(p.Expiration); ok {
			item.ExpirationDate = &exp
		}
		items = append(items, item)
	}

	return items, nil
}

// recipeInfo is the wire shape the LLM is asked to return for recipes
type recipeInfo struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Optional bool    `json:"optional"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// FetchRecipe retrieves a recipe's ingredient list and instructions from the LLM
func (c *Client) FetchRecipe(name, cuisine string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var prompt string
	if cuisine != "" {
		prompt = fmt.Sprintf(`
You are a cooking expert. Please provide detailed information about the dish "%s" from %s cuisine.
Return the information in the following JSON format:
{
  "name": "Full dish name",
  "cuisine": "Cuisine type",
  "ingredients": [{"name": "ingredient", "quantity": 1, "unit": "pcs", "optional": false}, ...],
  "instructions": ["step1", "step2", ...]
}
Only return the JSON, no other text.
`, name, cuisine)
		c.logger.Info("Requesting recipe info for %s (%s cuisine)", name, cuisine)
	} else {
		prompt = fmt.Sprintf(`
You are a cooking expert. Please provide detailed information about the dish "%s".
Determine the most likely cuisine for this dish.
Return the information in the following JSON format:
{
  "name": "Full dish name",
  "cuisine": "Cuisine type",
  "ingredients": [{"name": "ingredient", "quantity": 1, "unit": "pcs", "optional": false}, ...],
  "instructions": ["step1", "step2", ...]
}
Only return the JSON, no other text.
`, name)
		c.logger.Info("Requesting recipe info for %s (cuisine not specified)", name)
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a cooking expert who provides accurate information about dishes and recipes.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	content = cleanJSONResponse(content)

	var info recipeInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	recipe := &models.Recipe{
		Name:         info.Name,
		Cuisine:      info.Cuisine,
		Instructions: info.Instructions,
		Ingredients:  make([]models.RecipeIngredient, 0, len(info.Ingredients)),
	}
	if recipe.Name == "" {
		recipe.Name = name
	}
	for _, ing := range info.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Optional: ing.Optional,
		})
	}

	c.logger.Info("Successfully got information for recipe: %s", recipe.Name)
	return recipe, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly pantry assistant bot for a Telegram chat. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for fun and readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// Helper functions

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// cleanJSONResponse cleans up the JSON response from OpenAI
// Sometimes the model returns markdown code blocks with ```json and ``` delimiters
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Skip the first line, which might contain "```json"
		firstLineEnd := strings.Index(s, "\n")
		if firstLineEnd != -1 {
			s = s[firstLineEnd+1:]
		}

		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}

		s = strings.TrimSpace(s)
	}

	return s
}
