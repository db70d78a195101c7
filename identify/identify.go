// Package identify runs one tree identification attempt end to end:
// model call, response parsing, field validation. Each attempt is
// all-or-nothing; failures are collapsed into a single tagged Error.
package identify

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"

	"tree-identifier/llm"
	"tree-identifier/metrics"
	"tree-identifier/models"
	"tree-identifier/parser"
)

// Service orchestrates identification attempts against a model provider.
type Service struct {
	client llm.Client
}

// NewService creates a service backed by the given model client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// SourceName reports the label of the backing model provider.
func (s *Service) SourceName() string {
	return s.client.SourceName()
}

// Identify runs a single attempt: one model call, one parse. There is no
// retry; the caller's context bounds the call, so a caller that has gone
// away cancels the in-flight request and the result is discarded.
func (s *Service) Identify(ctx context.Context, imageData []byte, mimeType string) (*models.Identification, error) {
	start := time.Now()

	result, err := s.identify(ctx, imageData, mimeType)
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
		log.WithField("source", s.client.SourceName()).
			WithField("kind", outcome).
			Errorf("identification failed: %v", err)
	}
	metrics.AttemptsTotal.WithLabelValues(outcome).Inc()
	metrics.AttemptDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return result, err
}

func (s *Service) identify(ctx context.Context, imageData []byte, mimeType string) (*models.Identification, error) {
	if len(imageData) == 0 {
		return nil, &Error{Kind: KindEncode, Err: errors.New("empty image")}
	}

	response, err := s.client.IdentifyImage(ctx, imageData, mimeType)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	result, err := parser.ParseIdentification(response)
	if err != nil {
		switch {
		case errors.Is(err, parser.ErrIncomplete):
			return nil, &Error{Kind: KindValidation, Err: err}
		case errors.Is(err, parser.ErrMalformed):
			return nil, &Error{Kind: KindParse, Err: err}
		default:
			return nil, &Error{Kind: KindUnknown, Err: err}
		}
	}

	return result, nil
}
