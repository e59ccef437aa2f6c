package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"humanizer-backend/internal/extract"
	"humanizer-backend/internal/workerproc"
)

func TestProcessBatchReportsOnlyRetryableFailures(t *testing.T) {
	event := events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "ok", Body: "ok"},
		{MessageId: "flaky", Body: "flaky"},
		{MessageId: "bad", Body: "bad"},
		{MessageId: "unsupported", Body: "unsupported"},
	}}
	process := func(ctx context.Context, body string) error {
		switch body {
		case "flaky":
			return workerproc.ErrProcess{DocumentID: "doc-1", Err: errors.New("s3 timeout")}
		case "bad":
			return workerproc.ErrDecode{Err: errors.New("invalid character")}
		case "unsupported":
			return workerproc.ErrProcess{DocumentID: "doc-2", Err: extract.ErrUnsupported}
		}
		return nil
	}

	resp := processBatch(context.Background(), event, process)
	if len(resp.BatchItemFailures) != 1 || resp.BatchItemFailures[0].ItemIdentifier != "flaky" {
		t.Fatalf("expected only the flaky message to be retried, got %+v", resp.BatchItemFailures)
	}
}
