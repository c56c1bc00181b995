package contact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a message id does not exist.
var ErrNotFound = errors.New("contact message not found")

// Collection is the Firestore collection holding contact messages.
const Collection = "contact_messages"

// Repository persists contact messages.
type Repository interface {
	// Create stores a new message and returns it with its id and creation
	// timestamp filled in.
	Create(ctx context.Context, msg *Message) (*Message, error)
	// List returns every message, newest first.
	List(ctx context.Context) ([]*Message, error)
}

// FirestoreRepository stores contact messages in Firestore.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	if client == nil {
		panic("contact: firestore client required")
	}
	return &FirestoreRepository{client: client}
}

var _ Repository = (*FirestoreRepository)(nil)

// Create writes a new document; createdAt resolves to the server write time.
func (r *FirestoreRepository) Create(ctx context.Context, msg *Message) (*Message, error) {
	ref := r.client.Collection(Collection).NewDoc()
	if _, err := ref.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("contact: create document: %w", err)
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("contact: read back created document: %w", err)
	}
	var created Message
	if err := snap.DataTo(&created); err != nil {
		return nil, fmt.Errorf("contact: decode document %s: %w", ref.ID, err)
	}
	created.ID = ref.ID
	return &created, nil
}

// List fetches all messages ordered by creation time descending.
func (r *FirestoreRepository) List(ctx context.Context) ([]*Message, error) {
	snaps, err := r.client.Collection(Collection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("contact: list documents: %w", err)
	}

	msgs := make([]*Message, 0, len(snaps))
	for _, snap := range snaps {
		var msg Message
		if err := snap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("contact: decode document %s: %w", snap.Ref.ID, err)
		}
		msg.ID = snap.Ref.ID
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

// MemoryRepository keeps contact messages in memory; tests use it.
type MemoryRepository struct {
	mu   sync.RWMutex
	msgs map[string]*Message
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{msgs: make(map[string]*Message)}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Create(_ context.Context, msg *Message) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *msg
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	r.msgs[created.ID] = &created

	out := created
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*Message, 0, len(r.msgs))
	for _, msg := range r.msgs {
		out := *msg
		msgs = append(msgs, &out)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}
