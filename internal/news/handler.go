package news

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/internal/middleware"
	"github.com/semearlages/semearapi/internal/ratelimit"
	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/pkg"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Handler struct {
	repo           Repository
	metricsManager *metrics.Manager
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewHandler(repo Repository, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		NowFunc:        time.Now,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router, guard *middleware.RouteGuard) {
	router.Handle("/api/news", guard.Public(ratelimit.RuleNewsList, handler.HandleList)).Methods("GET").Name("news-list")
	router.Handle("/api/news", guard.Admin(ratelimit.RuleNewsCreate, handler.HandleCreate)).Methods("POST").Name("news-create")
	router.Handle("/api/news/{id}", guard.Public(ratelimit.RuleNewsGet, handler.HandleGet)).Methods("GET").Name("news-get")
	router.Handle("/api/news/{id}", guard.Admin(ratelimit.RuleNewsUpdate, handler.HandleUpdate)).Methods("PUT").Name("news-update")
	router.Handle("/api/news/{id}", guard.Admin(ratelimit.RuleNewsDelete, handler.HandleDelete)).Methods("DELETE").Name("news-delete")
}

func (handler *Handler) today() Date {
	return DateOf(handler.NowFunc())
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", DefaultListLimit)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := handler.repo.List(r.Context(), skip, limit)
	if err != nil {
		log.Errorf("list news [skip %d, limit %d]: %s", skip, limit, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, items)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	n, err := handler.repo.Get(r.Context(), id)
	if err != nil {
		handler.writeRepoError(w, "get", id, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, n)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("create news, unmarshal json: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := req.Validate(handler.today())
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := handler.repo.Add(r.Context(), n)
	if err != nil {
		log.Errorf("create news: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	handler.countChange("create")
	log.Tracef("news %d: [%s] added", added.ID, added.Title)
	pkg.WriteJSON(w, http.StatusCreated, added)
}

// HandleUpdate looks the article up before validating the body, so a missing
// article is a 404 even when the body is invalid.
func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := handler.repo.Get(r.Context(), id)
	if err != nil {
		handler.writeRepoError(w, "update", id, err)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update news %d, unmarshal json: %s", id, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := req.ApplyTo(*existing, handler.today())
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := handler.repo.Update(r.Context(), n)
	if err != nil {
		handler.writeRepoError(w, "update", id, err)
		return
	}

	handler.countChange("update")
	pkg.WriteJSON(w, http.StatusOK, updated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		handler.writeRepoError(w, "delete", id, err)
		return
	}

	handler.countChange("delete")
	log.Tracef("news %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) writeRepoError(w http.ResponseWriter, op string, id int, err error) {
	if errors.Is(err, ErrNewsNotFound) {
		pkg.WriteJSONError(w, http.StatusNotFound, ErrNewsNotFound.Error())
		return
	}
	log.Errorf("%s news %d: %s", op, id, err)
	pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
}

func (handler *Handler) countChange(op string) {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterNewsChanges.WithLabelValues(op).Inc()
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "error, id NaN")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return v, nil
}
