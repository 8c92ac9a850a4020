package httphandler

import (
	"net/http"

	"github.com/niksmo/freshmarket/internal/core/port"
)

// GET    /v1/favorites
// PUT    /v1/favorites/{productId}
// DELETE /v1/favorites/{productId}
// GET    /v1/favorites/{productId}

type FavoritesHandler struct {
	favorites port.FavoritesKeeper
	catalog   port.CatalogReader
}

func RegisterFavorites(
	mux *http.ServeMux, favorites port.FavoritesKeeper, catalog port.CatalogReader,
) {
	h := FavoritesHandler{favorites, catalog}
	mux.HandleFunc("GET /v1/favorites", h.GetFavorites)
	mux.HandleFunc("GET /v1/favorites/{productId}", h.GetFavorite)
	mux.HandleFunc("PUT /v1/favorites/{productId}", h.PutFavorite)
	mux.HandleFunc("DELETE /v1/favorites/{productId}", h.DeleteFavorite)
}

func (h FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.Favorites()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h FavoritesHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	writeJSON(w, http.StatusOK, map[string]bool{
		"favorite": h.favorites.IsFavorite(id),
	})
}

func (h FavoritesHandler) PutFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	if _, err := h.catalog.GetProductByID(id); err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	h.favorites.AddToFavorites(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h FavoritesHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	h.favorites.RemoveFromFavorites(r.PathValue("productId"))
	w.WriteHeader(http.StatusNoContent)
}
