package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	data   map[string][]Document // ownerID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
		data:   make(map[string][]Document),
	}
}

// Create stores a new document for its owner.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = r.nextID
	r.nextID++
	doc.CreatedAt = time.Now().UTC()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return doc, nil
}

// FindByIDAndOwner returns the document only if it belongs to ownerID.
func (r *MemoryRepo) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[ownerID]
	for i := range docs {
		if docs[i].ID == id {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByOwner returns one page of the owner's documents, newest first, plus
// the total matching count.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int, search string) ([]Document, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 6
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	ownerDocs := r.data[ownerID]
	r.mu.RUnlock()

	matching := make([]Document, 0, len(ownerDocs))
	needle := strings.ToLower(search)
	for _, doc := range ownerDocs {
		if search != "" && !strings.Contains(strings.ToLower(doc.Name), needle) {
			continue
		}
		matching = append(matching, doc)
	}

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].ID > matching[j].ID
		}
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := int64(len(matching))
	if offset >= len(matching) {
		return []Document{}, total, nil
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[offset:end], total, nil
}

var _ Repo = (*MemoryRepo)(nil)
