package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"humanizer-backend/internal/bootstrap"
	"humanizer-backend/internal/queue"
	"humanizer-backend/internal/shared/config"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/telemetry"
	"humanizer-backend/internal/workerproc"
)

const (
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
	receiveBatch              = 10
	receiveWaitSeconds        = 20
)

type processFunc func(ctx context.Context, body string) error

func main() {
	cfg := config.Load()
	if strings.TrimSpace(cfg.ExtractQueueURL) == "" {
		log.Fatal("EXTRACT_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	concurrency := envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("WORKER_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	consumer, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.ExtractQueueURL)
	if err != nil {
		log.Fatalf("sqs client: %v", err)
	}

	app, err := bootstrap.BuildContext(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	process := func(ctx context.Context, body string) error {
		return workerproc.HandleMessage(ctx, app, body)
	}

	telemetry.Info("worker.started", map[string]any{
		"queue":       cfg.ExtractQueueURL,
		"concurrency": concurrency,
	})
	var wg sync.WaitGroup
	run(ctx, consumer, process, concurrency, &wg)

	telemetry.Info("worker.stopping", map[string]any{"timeout": shutdownTimeout.String()})
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		telemetry.Warn("worker.shutdown_timeout", nil)
	}
}

// run polls until ctx is done, handling at most concurrency deliveries at once.
// In-flight handlers are tracked on wg.
func run(ctx context.Context, consumer queue.Consumer, process processFunc, concurrency int, wg *sync.WaitGroup) {
	sem := make(chan struct{}, max(1, concurrency))
	for {
		if ctx.Err() != nil {
			return
		}
		deliveries, err := consumer.Receive(ctx, receiveBatch, receiveWaitSeconds)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err})
			continue
		}
		for _, d := range deliveries {
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(d queue.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				handleDelivery(ctx, consumer, process, d)
			}(d)
		}
	}
}

// handleDelivery acknowledges successes and failures that redelivery cannot fix.
// Retryable failures are left on the queue for the visibility timeout to expire.
func handleDelivery(ctx context.Context, consumer queue.Consumer, process processFunc, d queue.Delivery) {
	msg, meta, err := workerproc.ParseMessage(d.Body)
	fields := map[string]any{
		"sqs_message_id": d.ID,
		"body_len":       meta.BodyLen,
	}
	if err != nil {
		fields["body_sha256"] = meta.BodySHA
		fields["error"] = err
		telemetry.Error("worker.extract.invalid_message", fields)
		metrics.IncExtractionJob("dropped")
		acknowledge(ctx, consumer, d, fields)
		return
	}
	fields["document_id"] = msg.DocumentID
	if msg.RequestID != "" {
		fields["request_id"] = msg.RequestID
	}

	if err := process(workerproc.WithParsedMessage(ctx, msg), d.Body); err != nil {
		fields["error"] = err
		if workerproc.Retryable(err) {
			telemetry.Error("worker.extract.failed", fields)
			return
		}
		telemetry.Error("worker.extract.dropped", fields)
		metrics.IncExtractionJob("dropped")
		acknowledge(ctx, consumer, d, fields)
		return
	}

	if acknowledge(ctx, consumer, d, fields) {
		telemetry.Info("worker.extract.completed", fields)
	}
}

func acknowledge(ctx context.Context, consumer queue.Consumer, d queue.Delivery, fields map[string]any) bool {
	if strings.TrimSpace(d.ReceiptHandle) == "" {
		telemetry.Error("worker.delete_failed", withError(fields, errors.New("missing receipt handle")))
		return false
	}
	if err := consumer.Delete(ctx, d); err != nil {
		telemetry.Error("worker.delete_failed", withError(fields, err))
		return false
	}
	return true
}

func withError(fields map[string]any, err error) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err
	return out
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
