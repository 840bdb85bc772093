package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hossin-jomm/creative-backend/internal/telemetry/metrics"
	"github.com/hossin-jomm/creative-backend/internal/telemetry/tracing"
	"github.com/hossin-jomm/creative-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// user-facing messages
const (
	MsgItemAdded     = "تم إضافة العنصر بنجاح"
	MsgItemUpdated   = "تم تحديث العنصر بنجاح"
	MsgItemDeleted   = "تم حذف العنصر بنجاح"
	MsgItemNotFound  = "العنصر غير موجود"
	MsgMissingFields = "البيانات المطلوبة ناقصة"
	MsgReadError     = "حدث خطأ في قراءة البيانات"
	MsgAddError      = "حدث خطأ في إضافة العنصر"
	MsgUpdateError   = "حدث خطأ في تحديث العنصر"
	MsgDeleteError   = "حدث خطأ في حذف العنصر"
)

type ListResponse struct {
	Items []Item `json:"items"`
}

type ItemResponse struct {
	Message string `json:"message,omitempty"`
	Item    *Item  `json:"item"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type itemRequest struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Type        ItemType `json:"type"`
	URL         string   `json:"url"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
}

type portfolioRepo interface {
	Insert(ctx context.Context, item *Item) (*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id string, item *Item) (*Item, error)
	Delete(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
}

type Handler struct {
	repo    portfolioRepo
	cache   *ListCache
	metrics *metrics.Manager
}

func NewHandler(
	repo portfolioRepo,
	cache *ListCache,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:    repo,
		cache:   cache,
		metrics: metricsManager,
	}
}

// SetupRoutes registers the portfolio API. Reads are public; mutations are
// gated by the auth middleware on the main router.
func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/portfolio", handler.handleList).Methods("GET", "OPTIONS").Name("list-portfolio")
	router.HandleFunc("/api/portfolio", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-portfolio-item")
	router.HandleFunc("/api/portfolio/categories", handler.handleCategories).Methods("GET", "OPTIONS").Name("portfolio-categories")
	router.HandleFunc("/api/portfolio/{id}", handler.handleGet).Methods("GET", "OPTIONS").Name("get-portfolio-item")
	router.HandleFunc("/api/portfolio/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-portfolio-item")
	router.HandleFunc("/api/portfolio/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-portfolio-item")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "portfolioHandler.list")
	defer span.End()

	if cached, ok := handler.cache.Get(); ok {
		span.SetStatus(codes.Ok, "ok-cached")
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	items, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list portfolio items: %s", err)
		pkg.WriteJSONError(w, MsgReadError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "list-error")
		return
	}

	if len(items) == 0 {
		items = []Item{}
	}

	resp, err := json.Marshal(ListResponse{Items: items})
	if err != nil {
		log.Errorf("marshal portfolio items: %s", err)
		pkg.WriteJSONError(w, MsgReadError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "marshal-error")
		return
	}

	handler.cache.Set(resp)
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "portfolioHandler.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]

	item, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			pkg.WriteJSONError(w, MsgItemNotFound, http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("get portfolio item %s: %s", id, err)
		pkg.WriteJSONError(w, MsgReadError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "get-error")
		return
	}

	handler.writeItemResponse(w, span, "", item, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "portfolioHandler.add")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var itemReq itemRequest
	if err := json.NewDecoder(r.Body).Decode(&itemReq); err != nil {
		log.Errorf("add portfolio item, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, MsgMissingFields, http.StatusBadRequest)
		span.SetStatus(codes.Error, "bad-request-params")
		return
	}

	item := itemReq.toItem()
	if err := item.Validate(); err != nil {
		pkg.WriteJSONError(w, MsgMissingFields, http.StatusBadRequest)
		span.SetStatus(codes.Error, "validation-error")
		return
	}

	added, err := handler.repo.Insert(ctx, item)
	if err != nil {
		log.Errorf("add portfolio item [%s]: %s", item.Title, err)
		pkg.WriteJSONError(w, MsgAddError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "insert-error")
		return
	}

	handler.cache.Invalidate()
	handler.metrics.CounterPortfolioItems.Inc()
	log.Tracef("new portfolio item added: [%s] [%s]: %s", added.Title, added.Category, added.ID)

	handler.writeItemResponse(w, span, MsgItemAdded, added, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "portfolioHandler.update")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var itemReq itemRequest
	if err := json.NewDecoder(r.Body).Decode(&itemReq); err != nil {
		log.Errorf("update portfolio item, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, MsgMissingFields, http.StatusBadRequest)
		span.SetStatus(codes.Error, "bad-request-params")
		return
	}

	item := itemReq.toItem()
	if err := item.Validate(); err != nil {
		pkg.WriteJSONError(w, MsgMissingFields, http.StatusBadRequest)
		span.SetStatus(codes.Error, "validation-error")
		return
	}

	updated, err := handler.repo.Update(ctx, id, item)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			pkg.WriteJSONError(w, MsgItemNotFound, http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("update portfolio item %s: %s", id, err)
		pkg.WriteJSONError(w, MsgUpdateError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "update-error")
		return
	}

	handler.cache.Invalidate()
	log.Tracef("portfolio item updated: [%s]: %s", updated.Title, updated.ID)

	handler.writeItemResponse(w, span, MsgItemUpdated, updated, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "portfolioHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]

	deleted, err := handler.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			pkg.WriteJSONError(w, MsgItemNotFound, http.StatusNotFound)
			span.SetStatus(codes.Error, "not-found")
			return
		}
		log.Errorf("delete portfolio item %s: %s", id, err)
		pkg.WriteJSONError(w, MsgDeleteError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "delete-error")
		return
	}

	handler.cache.Invalidate()
	log.Tracef("portfolio item deleted: %s", id)

	handler.writeItemResponse(w, span, MsgItemDeleted, deleted, http.StatusOK)
}

func (handler *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := json.Marshal(CategoriesResponse{Categories: Categories})
	if err != nil {
		log.Errorf("marshal categories: %s", err)
		pkg.WriteJSONError(w, MsgReadError, http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) writeItemResponse(
	w http.ResponseWriter,
	span trace.Span,
	message string,
	item *Item,
	statusCode int,
) {
	resp, err := json.Marshal(ItemResponse{
		Message: message,
		Item:    item,
	})
	if err != nil {
		log.Errorf("marshal portfolio item %s: %s", item.ID, err)
		pkg.WriteJSONError(w, MsgReadError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "marshal-error")
		return
	}
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, statusCode)
}

func (req *itemRequest) toItem() *Item {
	return &Item{
		Title:       req.Title,
		Category:    req.Category,
		Type:        req.Type,
		URL:         req.URL,
		Thumbnail:   req.Thumbnail,
		Description: req.Description,
	}
}
