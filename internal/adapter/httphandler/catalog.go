package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/port"
	"github.com/shopspring/decimal"
)

// GET /v1/products?q=&category=&brands=&subcategories=&price_min=&price_max=&in_stock=&on_sale=&min_rating=&sort=
// GET /v1/products/{id}
// GET /v1/categories

type CatalogHandler struct {
	catalog port.CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogReader) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	q := r.URL.Query()

	ps := h.catalog.SearchProducts(q.Get("q"), q.Get("category"))

	filters, err := parseFilters(q)
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		log.Warn("failed to parse filters", "err", err)
		return
	}
	ps = h.catalog.FilterProducts(ps, filters)

	// Sorting is a caller concern, applied at this edge.
	sortProducts(ps, q.Get("sort"))

	writeJSON(w, http.StatusOK, toProductViews(ps))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProductByID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cs := h.catalog.Categories()
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func parseFilters(q map[string][]string) (domain.ProductFilters, error) {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	var f domain.ProductFilters

	minS, maxS := get("price_min"), get("price_max")
	if minS != "" || maxS != "" {
		pr := domain.PriceRange{Min: decimal.Zero, Max: decimal.New(1, 9)}
		if minS != "" {
			v, err := decimal.NewFromString(minS)
			if err != nil {
				return f, err
			}
			pr.Min = v
		}
		if maxS != "" {
			v, err := decimal.NewFromString(maxS)
			if err != nil {
				return f, err
			}
			pr.Max = v
		}
		f.PriceRange = &pr
	}

	if s := get("brands"); s != "" {
		f.Brands = strings.Split(s, ",")
	}
	if s := get("subcategories"); s != "" {
		f.Subcategories = strings.Split(s, ",")
	}
	f.InStock = get("in_stock") == "true"
	f.OnSale = get("on_sale") == "true"

	if s := get("min_rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return f, err
		}
		f.MinRating = v
	}
	return f, nil
}

func sortProducts(ps []domain.Product, order string) {
	switch order {
	case "name":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Name < ps[j].Name
		})
	case "price_asc":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price.LessThan(ps[j].Price)
		})
	case "price_desc":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price.GreaterThan(ps[j].Price)
		})
	case "rating":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Rating > ps[j].Rating
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
