package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	FileURL   string    `json:"fileUrl"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListResponse is one page of documents plus paging metadata.
type ListResponse struct {
	Documents   []DocumentResponse `json:"documents"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		FileURL:   doc.FileURL,
		Text:      doc.Text,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
	}
}

func toListResponse(page ListPage) ListResponse {
	docs := make([]DocumentResponse, 0, len(page.Documents))
	for _, doc := range page.Documents {
		docs = append(docs, toResponse(doc))
	}
	return ListResponse{
		Documents:   docs,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}
