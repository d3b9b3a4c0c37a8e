package documents

import "context"

// Repo defines persistence operations for documents. Listing and lookup are
// always owner-scoped.
type Repo interface {
	Create(ctx context.Context, doc Document) (Document, error)
	FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int, search string) ([]Document, int64, error)
}
