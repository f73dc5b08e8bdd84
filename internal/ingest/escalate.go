package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/alert"
	"github.com/BenBeattieHood/webjet-movie-comparer/internal/queue"
)

// maxDelaySeconds is the requeue-delay ceiling imposed by SQS.
const maxDelaySeconds = 900

// Backoff returns the requeue delay in seconds for a message whose previous
// delay was lastDelay: min(lastDelay+2, 900).
func Backoff(lastDelay int) int {
	d := lastDelay + 2
	if d > maxDelaySeconds {
		d = maxDelaySeconds
	}
	return d
}

// Escalator handles any failure from the other handlers: it requeues the
// failed message with a backoff delay and raises a (rate-limited) alert.
// The escalation path itself is best-effort; its own failures are logged
// and go no further.
type Escalator struct {
	Queue   Sender
	Alerts  alert.Alerter
	Limiter *alert.Limiter
}

// Escalate processes one failure. msg is nil when the unit of work never
// decoded into a message; there is no retry state to thread in that case,
// so only the alert fires.
//
// It reports whether the original delivery is finished with: true when the
// message was requeued (or there was nothing to requeue), false when the
// requeue itself failed and the message should be left for redelivery.
func (e *Escalator) Escalate(ctx context.Context, msg *queue.Message, cause error) bool {
	log.Println("escalate: failure:", cause)

	done := true
	if msg != nil {
		delay := Backoff(msg.LastDelay)

		// The applied delay is written back into the message so the next
		// failure backs off further, walking up to the ceiling.
		requeued := *msg
		requeued.LastDelay = delay

		if err := e.Queue.SendDelayed(ctx, requeued, time.Duration(delay)*time.Second); err != nil {
			log.Println("escalate: requeue failed:", err)
			done = false
		}
	}

	key := failureKey(msg)
	if e.Limiter != nil && !e.Limiter.Allow(key) {
		log.Println("escalate: alert suppressed", "key=", key)
		return done
	}

	body := fmt.Sprintf("failure: %v\nwork: %s\n", cause, key)
	if err := e.Alerts.Alert(ctx, "movie-comparer pipeline failure", body); err != nil {
		// Best-effort only; alert failures are never escalated.
		log.Println("escalate: alert failed:", err)
	}
	return done
}

func failureKey(msg *queue.Message) string {
	if msg == nil {
		return "undecodable-message"
	}
	return fmt.Sprintf("%s/%s/%s", msg.Type, msg.Provider, msg.ID)
}
