package straal

import (
	"sync"

	"github.com/google/uuid"
)

// OperationContext is a handle for one in-flight 3DS challenge. It exists
// from the moment a challenge starts until it resolves, is cancelled, or the
// presenter fails.
type OperationContext struct {
	ID uuid.UUID
}

func newOperationContext() *OperationContext {
	return &OperationContext{ID: uuid.New()}
}

// OperationContextRegistry tracks outstanding operation contexts. It is safe
// for concurrent use by pipeline runs on different goroutines. A context is
// registered when its challenge starts and unregistered exactly once on any
// exit path, so membership never outlives an operation.
type OperationContextRegistry struct {
	mu      sync.Mutex
	members map[uuid.UUID]*OperationContext
}

func NewOperationContextRegistry() *OperationContextRegistry {
	return &OperationContextRegistry{members: make(map[uuid.UUID]*OperationContext)}
}

func (r *OperationContextRegistry) register(ctx *OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[ctx.ID] = ctx
}

func (r *OperationContextRegistry) unregister(ctx *OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, ctx.ID)
}

// Registered returns a snapshot of the outstanding contexts.
func (r *OperationContextRegistry) Registered() []*OperationContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*OperationContext, 0, len(r.members))
	for _, c := range r.members {
		out = append(out, c)
	}
	return out
}

// Len reports the number of outstanding contexts.
func (r *OperationContextRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
