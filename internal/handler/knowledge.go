package handler

import (
	"net/http"

	"github.com/spiritually/spiritually/internal/service"
)

// KnowledgeHandler serves the tradition collections.
type KnowledgeHandler struct {
	knowledge *service.KnowledgeService
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(knowledge *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

// HandleListAll returns all three collections under their named keys.
// GET /traditions
// Response: {"philosophies":[...],"religions":[...],"astrologicalSystems":[...]}
func (h *KnowledgeHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.knowledge.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, "list all traditions", err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogDTO(catalog))
}

// HandleCollection returns the full collection for the given tag.
// GET /{collection}
func (h *KnowledgeHandler) HandleCollection(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traditions, err := h.knowledge.ListByTag(r.Context(), tag)
		if err != nil {
			writeServiceError(w, "list "+tag, err)
			return
		}
		writeJSON(w, http.StatusOK, toTraditionDTOs(traditions))
	}
}

// HandleGetByID returns one record from the given collection.
// GET /{collection}/{id}
func (h *KnowledgeHandler) HandleGetByID(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradition, err := h.knowledge.GetByID(r.Context(), tag, r.PathValue("id"))
		if err != nil {
			writeServiceError(w, "get "+tag, err)
			return
		}
		writeJSON(w, http.StatusOK, toTraditionDTO(*tradition))
	}
}

// HandleSearch runs a text search across all three collections. An empty
// or unmatched query returns empty result sets.
// GET /search?query=...
func (h *KnowledgeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.knowledge.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, "search traditions", err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogDTO(catalog))
}

// HandleEnhancedCollection returns the collection with derived enhanced
// content on every record. Registered behind RequireAuth.
// GET /enhanced/{collection}
func (h *KnowledgeHandler) HandleEnhancedCollection(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traditions, err := h.knowledge.EnhancedListByTag(r.Context(), tag)
		if err != nil {
			writeServiceError(w, "list enhanced "+tag, err)
			return
		}
		writeJSON(w, http.StatusOK, toTraditionDTOs(traditions))
	}
}

// HandleEnhancedSearch is HandleSearch with enhanced decoration.
// Registered behind RequireAuth.
// GET /enhanced/search?query=...
func (h *KnowledgeHandler) HandleEnhancedSearch(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.knowledge.EnhancedSearch(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, "enhanced search traditions", err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogDTO(catalog))
}
