package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// maxDelay is the SQS DelaySeconds ceiling.
const maxDelay = 900 * time.Second

// SQS is the work queue shared by every pipeline component.
type SQS struct {
	client   *sqs.Client
	queueURL string
}

func NewSQS(cfg aws.Config, queueURL string) *SQS {
	return &SQS{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}
}

func (q *SQS) Send(ctx context.Context, msg Message) error {
	return q.send(ctx, msg, 0)
}

// SendDelayed enqueues msg with a delivery delay, clamped to the SQS ceiling.
func (q *SQS) SendDelayed(ctx context.Context, msg Message, delay time.Duration) error {
	if delay > maxDelay {
		delay = maxDelay
	}
	return q.send(ctx, msg, delay)
}

func (q *SQS) send(ctx context.Context, msg Message, delay time.Duration) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(q.queueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	return err
}

// Received is one delivered message. The body is kept raw so the caller can
// still escalate messages that fail to decode.
type Received struct {
	Body          string
	ReceiptHandle string
}

// Receive long-polls for up to max messages (SQS caps the batch at 10).
func (q *SQS) Receive(ctx context.Context, max int32) ([]Received, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: max,
		WaitTimeSeconds:     20,
	})
	if err != nil {
		return nil, err
	}

	msgs := make([]Received, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, Received{
			Body:          aws.ToString(m.Body),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
		})
	}
	return msgs, nil
}

// Delete acknowledges a message. Call only after the work succeeded or the
// message has been requeued/escalated; an undeleted message reappears after
// the visibility timeout.
func (q *SQS) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	return err
}
