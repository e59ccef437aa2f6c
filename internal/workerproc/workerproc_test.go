package workerproc

import (
	"errors"
	"fmt"
	"testing"

	"humanizer-backend/internal/documents"
	"humanizer-backend/internal/extract"
)

func TestParseMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"empty", "  ", ErrEmptyBody{}},
		{"bad json", "{", ErrDecode{}},
		{"missing user", `{"documentId":"doc-1"}`, ErrMissingDocument{}},
	}
	for _, tc := range cases {
		_, meta, err := ParseMessage(tc.body)
		if fmt.Sprintf("%T", err) != fmt.Sprintf("%T", tc.want) {
			t.Fatalf("%s: expected %T, got %T (%v)", tc.name, tc.want, err, err)
		}
		if Retryable(err) {
			t.Fatalf("%s: parse errors must not be retried", tc.name)
		}
		if tc.name != "empty" && meta.BodySHA == "" {
			t.Fatalf("%s: expected body hash", tc.name)
		}
	}

	msg, _, err := ParseMessage(`{"documentId":"doc-1","userId":"user-1","requestId":"r","version":1}`)
	if err != nil || msg.DocumentID != "doc-1" {
		t.Fatalf("unexpected parse result %+v %v", msg, err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(ErrProcess{Err: documents.ErrNotFound}) {
		t.Fatalf("missing documents must not be retried")
	}
	if Retryable(ErrProcess{Err: fmt.Errorf("wrap: %w", extract.ErrUnsupported)}) {
		t.Fatalf("unsupported files must not be retried")
	}
	if !Retryable(ErrProcess{Err: errors.New("s3 timeout")}) {
		t.Fatalf("transient failures should be retried")
	}
}
