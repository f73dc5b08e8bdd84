package queue

// Message types. A query-all message fans a provider's catalog out into
// query-single messages; a query-single message ingests one item.
const (
	TypeQueryAll    = "query-all"
	TypeQuerySingle = "query-single"
)

type Message struct {
	Type     string `json:"type"`
	Provider string `json:"provider"`
	ID       string `json:"id,omitempty"`

	// LastDelay carries the backoff state for requeued query-single work:
	// the delay (in seconds) applied on the previous requeue, zero for
	// first delivery.
	LastDelay int `json:"lastDelay"`
}

// QueryAll builds a catalog fan-out request for one provider.
func QueryAll(provider string) Message {
	return Message{Type: TypeQueryAll, Provider: provider}
}

// QuerySingle builds an ingestion request for one catalog item.
func QuerySingle(provider, id string) Message {
	return Message{Type: TypeQuerySingle, Provider: provider, ID: id, LastDelay: 0}
}
