package explain

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ocr-backend/internal/documents"
	"ocr-backend/internal/llm"
	"ocr-backend/internal/shared/server/middleware"
	"ocr-backend/internal/shared/server/respond"
)

// Handler wires the explain endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the explain route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, extra ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, extra...), h.explain)
	rg.POST("/explain", handlers...)
}

type explainRequest struct {
	ID    int64  `json:"id" binding:"required"`
	Query string `json:"query" binding:"required"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

func (h *Handler) explain(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)

	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id and query are required", nil)
		return
	}

	answer, err := h.Svc.Explain(c.Request.Context(), identity.ID, req.ID, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrEmptyQuery.Error(), nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, llm.ErrThrottled):
			respond.Error(c, http.StatusTooManyRequests, "llm_throttled", "language model quota exceeded, retry later", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "llm_error", "failed to generate explanation", nil)
		}
		return
	}

	c.Set("documentId", req.ID)
	respond.OK(c, explainResponse{Explanation: answer})
}
