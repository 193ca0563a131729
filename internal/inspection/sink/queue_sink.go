package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bitleak/lmstfy/client"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

// Publisher is the part of the lmstfy client the queue sink uses.
type Publisher interface {
	Publish(queue string, data []byte, ttlSecond uint32, tries uint16, delaySecond uint32) (string, error)
}

// IntakeJob is the payload consumed by the intake worker.
type IntakeJob struct {
	Receipt domain.Receipt `json:"receipt"`
	Draft   domain.Draft   `json:"draft"`
}

// QueueSink publishes submissions to an lmstfy queue.
type QueueSink struct {
	pub   Publisher
	queue string
	tries uint16
}

func NewQueueSink(pub Publisher, queue string) *QueueSink {
	return &QueueSink{pub: pub, queue: queue, tries: 3}
}

// NewLmstfyPublisher connects to an lmstfy server.
func NewLmstfyPublisher(host string, port int, namespace, token string) Publisher {
	return lmstfyPublisher{cli: client.NewLmstfyClient(host, port, namespace, token)}
}

type lmstfyPublisher struct {
	cli *client.LmstfyClient
}

func (p lmstfyPublisher) Publish(queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error) {
	jobID, err := p.cli.Publish(queue, data, ttl, tries, delay)
	if err != nil {
		return "", err
	}
	return jobID, nil
}

func (s *QueueSink) Name() string { return "queue" }

func (s *QueueSink) Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(IntakeJob{Receipt: receipt, Draft: d})
	if err != nil {
		return fmt.Errorf("marshal intake job: %w", err)
	}
	if _, err := s.pub.Publish(s.queue, payload, 0, s.tries, 0); err != nil {
		return fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return nil
}
