package identify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tree-identifier/stubllm"
)

// fakeClient returns a canned response or error for every call.
type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) IdentifyImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) SourceName() string { return "Fake" }

var testImage = []byte{0xFF, 0xD8, 0xFF, 0xE0, 'J', 'F', 'I', 'F'}

func TestIdentifySuccess(t *testing.T) {
	svc := NewService(&fakeClient{
		response: `{"commonName":"Oak","scientificName":"Quercus robur","description":"A broad oak.","careTips":["Water weekly","Full sun"]}`,
	})

	result, err := svc.Identify(context.Background(), testImage, "image/jpeg")
	if err != nil {
		t.Fatalf("Identify() unexpected error: %v", err)
	}

	if result.CommonName != "Oak" {
		t.Errorf("CommonName = %q, want %q", result.CommonName, "Oak")
	}
	if result.ScientificName != "Quercus robur" {
		t.Errorf("ScientificName = %q, want %q", result.ScientificName, "Quercus robur")
	}
	if result.Description != "A broad oak." {
		t.Errorf("Description = %q, want %q", result.Description, "A broad oak.")
	}
	if len(result.CareTips) != 2 || result.CareTips[0] != "Water weekly" || result.CareTips[1] != "Full sun" {
		t.Errorf("CareTips = %v, want [Water weekly Full sun]", result.CareTips)
	}
}

func TestIdentifyFailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		client   *fakeClient
		image    []byte
		wantKind FailureKind
		contains string
	}{
		{
			name:     "transport failure",
			client:   &fakeClient{err: errors.New("network down")},
			image:    testImage,
			wantKind: KindTransport,
			contains: "network down",
		},
		{
			name:     "malformed response",
			client:   &fakeClient{response: "not json at all"},
			image:    testImage,
			wantKind: KindParse,
		},
		{
			name:     "incomplete response",
			client:   &fakeClient{response: `{"commonName":"Oak"}`},
			image:    testImage,
			wantKind: KindValidation,
		},
		{
			name:     "empty image",
			client:   &fakeClient{},
			image:    nil,
			wantKind: KindEncode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.client)
			result, err := svc.Identify(context.Background(), tt.image, "image/jpeg")
			if result != nil {
				t.Error("Identify() expected nil result on failure")
			}
			if err == nil {
				t.Fatal("Identify() expected error, got nil")
			}
			if kind := KindOf(err); kind != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q", kind, tt.wantKind)
			}
			if err.Error() == "" {
				t.Error("Identify() error message is empty")
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestIdentifyWithStub(t *testing.T) {
	svc := NewService(stubllm.NewClient())

	result, err := svc.Identify(context.Background(), testImage, "image/jpeg")
	if err != nil {
		t.Fatalf("Identify() unexpected error: %v", err)
	}
	if result.CommonName == "" || result.ScientificName == "" || result.Description == "" {
		t.Errorf("stub result missing required fields: %+v", result)
	}

	// The stub is deterministic per input.
	again, err := svc.Identify(context.Background(), testImage, "image/jpeg")
	if err != nil {
		t.Fatalf("Identify() unexpected error: %v", err)
	}
	if again.CommonName != result.CommonName {
		t.Errorf("stub not deterministic: %q vs %q", again.CommonName, result.CommonName)
	}
}

func TestKindOfUntaggedError(t *testing.T) {
	if kind := KindOf(errors.New("plain")); kind != KindUnknown {
		t.Errorf("KindOf(plain error) = %q, want %q", kind, KindUnknown)
	}
}
