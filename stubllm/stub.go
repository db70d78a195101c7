package stubllm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Client is a deterministic, no-network model stub intended for CI and local
// end-to-end runs. It returns schema-valid JSON so downstream parsing and the
// HTTP surface exercise the full identification path.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) IdentifyImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	// Make output deterministic per-input so runs are stable in CI.
	sum := sha256.Sum256(imageData)
	short := hex.EncodeToString(sum[:8])

	out := map[string]any{
		"commonName":     fmt.Sprintf("Stub Oak (%s)", short),
		"scientificName": "Quercus stubensis",
		"description":    fmt.Sprintf("Stubbed identification for a %s image of %d bytes.", mimeType, len(imageData)),
		"careTips": []string{
			"Water deeply but infrequently",
			"Prefers full sun",
		},
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
