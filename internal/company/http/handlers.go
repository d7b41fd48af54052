// Package companyhttp exposes company lookups over HTTP: the JSON proxy
// endpoint and the server-rendered search and result pages.
package companyhttp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
	"github.com/consulta-cnpj/consulta-cnpj/internal/platform/httpx"
	"github.com/consulta-cnpj/consulta-cnpj/internal/view"
)

const (
	pageTitle   = "Consulta CNPJ"
	themeCookie = "theme"
)

// Service exposes the lookup required by the handler.
type Service interface {
	Lookup(ctx context.Context, input string) (company.Record, error)
}

// Handler serves the lookup API and pages.
type Handler struct {
	logger       *slog.Logger
	service      Service
	templates    *view.Engine
	defaultTheme string
}

// NewHandler builds a handler. defaultTheme applies when the browser has no
// valid theme cookie.
func NewHandler(logger *slog.Logger, service Service, templates *view.Engine, defaultTheme string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if !view.ValidTheme(defaultTheme) {
		defaultTheme = view.ThemeLight
	}
	return &Handler{
		logger:       logger,
		service:      service,
		templates:    templates,
		defaultTheme: defaultTheme,
	}
}

func (h *Handler) handleAPI(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
	default:
		header.Set("Allow", "GET, OPTIONS")
		httpx.Failure(w, http.StatusMethodNotAllowed, company.MessageMethodNotAllowed)
		return
	}

	if h.service == nil {
		httpx.Failure(w, http.StatusNotImplemented, company.MessageInternal)
		return
	}
	input := r.URL.Query().Get("cnpj")
	rec, err := h.service.Lookup(r.Context(), input)
	if err != nil {
		h.logFailure("api lookup", input, err)
		httpx.Failure(w, statusFor(company.KindOf(err)), company.MessageOf(err))
		return
	}
	httpx.Success(w, rec)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil {
		http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
		return
	}
	data := h.templateData(r)
	if err := h.templates.Render(w, "search", data); err != nil {
		h.handleServerError(w, "render search", err)
	}
}

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
		return
	}
	data := h.templateData(r)
	data.Query = strings.TrimSpace(r.URL.Query().Get("cnpj"))

	rec, err := h.service.Lookup(r.Context(), data.Query)
	if err != nil {
		h.logFailure("page lookup", data.Query, err)
		data.Error = company.MessageOf(err)
		if renderErr := h.templates.RenderStatus(w, statusFor(company.KindOf(err)), "search", data); renderErr != nil {
			h.handleServerError(w, "render search", renderErr)
		}
		return
	}

	vm := buildResultView(rec)
	data.Title = firstNonEmpty(vm.TradeAlias, vm.LegalName, vm.CNPJ) + " · " + pageTitle
	data.Data = vm
	if err := h.templates.Render(w, "result", data); err != nil {
		h.handleServerError(w, "render result", err)
	}
}

func (h *Handler) templateData(r *http.Request) view.TemplateData {
	return view.TemplateData{
		Title:       pageTitle,
		Theme:       h.themeFor(r),
		CurrentPath: r.URL.Path,
	}
}

// themeFor reads the browser's theme cookie, ignoring values the layout does
// not know.
func (h *Handler) themeFor(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && view.ValidTheme(c.Value) {
		return c.Value
	}
	return h.defaultTheme
}

func (h *Handler) logFailure(op, input string, err error) {
	kind := company.KindOf(err)
	level := slog.LevelInfo
	if kind == company.KindInternal || kind == company.KindUpstreamUnavailable || kind == company.KindUpstreamAuthFailure {
		level = slog.LevelError
	}
	h.logger.Log(context.Background(), level, op+" failed",
		slog.String("cnpj", input),
		slog.String("kind", string(kind)),
		slog.Any("error", err))
}

func (h *Handler) handleServerError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// statusFor maps a failure kind to the HTTP status the API answers with.
func statusFor(kind company.Kind) int {
	switch kind {
	case company.KindMalformedInput, company.KindChecksumInvalid:
		return http.StatusBadRequest
	case company.KindUpstreamNotFound:
		return http.StatusNotFound
	case company.KindUpstreamAuthFailure:
		return http.StatusUnauthorized
	case company.KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	case company.KindUpstreamMalformedResponse, company.KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
