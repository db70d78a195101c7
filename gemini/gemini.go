package gemini

import (
	"context"
	"errors"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tree-identifier/encoder"
)

const instruction = "Identify the tree in this image."

// identificationSchema constrains the model output to the identification
// record shape. careTips is optional; the other fields are required.
var identificationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"commonName": {
			Type:        genai.TypeString,
			Description: "The common name of the tree.",
		},
		"scientificName": {
			Type:        genai.TypeString,
			Description: "The scientific (Latin) name of the tree.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "A brief description of the tree, its characteristics, and typical habitat.",
		},
		"careTips": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "A few tips on how to care for this tree.",
		},
	},
	Required: []string{"commonName", "scientificName", "description"},
}

// Client calls the Gemini API with schema-constrained JSON output.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client from an API key and model name.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) SourceName() string {
	return "Gemini"
}

// IdentifyImage sends the image and the fixed instruction to the model and
// returns the raw JSON text of the first candidate. One attempt, no retry.
func (c *Client) IdentifyImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = identificationSchema

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(encoder.Format(mimeType), imageData),
		genai.Text(instruction),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if text, ok := p.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", errors.New("gemini: no text part in response")
}
