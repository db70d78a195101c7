package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tree-identifier/models"
)

// ErrMalformed marks responses that are not valid JSON.
var ErrMalformed = errors.New("malformed identification response")

// ErrIncomplete marks schema-valid JSON missing a required field.
var ErrIncomplete = errors.New("incomplete identification")

// ExtractJSONFromMarkdown extracts JSON from markdown code blocks. Models
// occasionally wrap output in ``` fences even when asked for plain JSON.
func ExtractJSONFromMarkdown(response string) string {
	startMarker := "```"
	endMarker := "```"

	startIdx := strings.Index(response, startMarker)
	if startIdx == -1 {
		// No code block found, try to find JSON object directly
		startIdx = strings.Index(response, "{")
		if startIdx == -1 {
			return response
		}
		endIdx := strings.LastIndex(response, "}")
		if endIdx == -1 {
			return response
		}
		return strings.TrimSpace(response[startIdx : endIdx+1])
	}

	// Find the end of the first code block
	endIdx := strings.Index(response[startIdx+len(startMarker):], endMarker)
	if endIdx == -1 {
		return response
	}
	endIdx += startIdx + len(startMarker)

	content := response[startIdx+len(startMarker) : endIdx]

	// Remove the language identifier if present (e.g., "json")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) > 0 && (strings.TrimSpace(lines[0]) == "json" || strings.TrimSpace(lines[0]) == "") {
		content = strings.Join(lines[1:], "\n")
	}

	return strings.TrimSpace(content)
}

// ParseIdentification parses the model response into an Identification.
// The response is trimmed and unwrapped from markdown fences first.
// Required fields are commonName, scientificName and description;
// careTips may be absent or empty.
func ParseIdentification(response string) (*models.Identification, error) {
	cleaned := strings.TrimSpace(response)
	jsonContent := ExtractJSONFromMarkdown(cleaned)

	var result models.Identification
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if result.CommonName == "" {
		return nil, fmt.Errorf("%w: commonName is required", ErrIncomplete)
	}
	if result.ScientificName == "" {
		return nil, fmt.Errorf("%w: scientificName is required", ErrIncomplete)
	}
	if result.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrIncomplete)
	}

	return &result, nil
}
