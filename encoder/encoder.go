package encoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Payload is an image ready for embedding in a JSON request: the base64
// payload segment (no data-URL prefix) plus its MIME type.
type Payload struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// Encode reads the full contents of r and produces a base64 payload.
// The MIME type is sniffed from the leading bytes. A read failure
// propagates unchanged; no size or type restriction is applied here.
func Encode(r io.Reader) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return Payload{}, errors.New("empty image")
	}
	return Payload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: http.DetectContentType(data),
	}, nil
}

// EncodeBytes encodes an in-memory image.
func EncodeBytes(data []byte) (Payload, error) {
	return Encode(bytes.NewReader(data))
}

// ParseDataURL accepts either a data URL ("data:image/png;base64,....")
// or a bare base64 string. For data URLs everything through the first
// comma is stripped and the declared MIME type is kept; for bare base64
// the MIME type is sniffed from the decoded bytes.
func ParseDataURL(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Payload{}, errors.New("empty image payload")
	}

	mimeType := ""
	if strings.HasPrefix(s, "data:") {
		comma := strings.Index(s, ",")
		if comma == -1 {
			return Payload{}, errors.New("malformed data URL: missing comma")
		}
		meta := s[len("data:"):comma]
		if semi := strings.Index(meta, ";"); semi != -1 {
			meta = meta[:semi]
		}
		mimeType = meta
		s = s[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Payload{}, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}
	return Payload{Data: s, MimeType: mimeType}, nil
}

// Bytes decodes the payload back into the original image bytes.
func (p Payload) Bytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return raw, nil
}

// Format returns the image format token expected by the Gemini SDK
// ("jpeg", "png"), derived from the MIME type.
func (p Payload) Format() string {
	return Format(p.MimeType)
}

// Format strips the "image/" prefix from a MIME type.
func Format(mimeType string) string {
	return strings.TrimPrefix(mimeType, "image/")
}
