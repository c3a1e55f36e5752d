package http

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/domain"
)

type Handler struct {
	svc *app.DreamService
}

func NewHandler(svc *app.DreamService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/dreams", h.CreateDream)
	e.GET("/v1/dreams", h.ListDreams)
	e.GET("/v1/dreams/:id", h.GetDream)
	e.GET("/v1/render/poster.png", h.RenderPoster)
	e.GET("/v1/render/radar.png", h.RenderRadar)
	e.GET("/v1/render/spectrum.png", h.RenderSpectrum)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateDream(c echo.Context) error {
	var req DreamRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "body must be a JSON object"})
	}
	if req.Variations < 0 || req.Variations > app.MaxVariations {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("variations must be between 1 and %d", app.MaxVariations),
		})
	}

	var seed *uint64
	if req.Seed != nil {
		v := uint64(*req.Seed)
		seed = &v
	}

	resp, err := h.svc.Interpret(c.Request().Context(), app.InterpretRequest{
		Text:       req.Text,
		Style:      req.Style,
		Variations: req.Variations,
		Seed:       seed,
	})
	if err != nil {
		return mapError(c, err)
	}

	out := toResponse(resp.Entry)
	out.Meta.Journaled = resp.Journaled
	out.Meta.RequestID, _ = c.Get("request_id").(string)
	out.Meta.LatencyMS = resp.LatencyMS
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDream(c echo.Context) error {
	e, err := h.svc.Dream(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	out := toResponse(e)
	out.Meta.Journaled = true
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ListDreams(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > app.MaxListLimit {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("limit must be an integer between 1 and %d", app.MaxListLimit),
			})
		}
		limit = n
	}

	entries, err := h.svc.Dreams(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	out := DreamListResponse{Dreams: make([]DreamResponse, len(entries))}
	for i, e := range entries {
		out.Dreams[i] = toResponse(e)
		out.Dreams[i].Meta.Journaled = true
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) RenderPoster(c echo.Context) error {
	v, err := emotionsFromQuery(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	var seed uint64
	if raw := c.QueryParam("seed"); raw != "" {
		seed, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "seed must be an unsigned integer"})
		}
	}

	img, err := h.svc.Poster(v, c.QueryParam("style"), seed)
	if err != nil {
		return mapError(c, err)
	}
	return writePNG(c, img)
}

func (h *Handler) RenderRadar(c echo.Context) error {
	v, err := emotionsFromQuery(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return writePNG(c, h.svc.Radar(v))
}

func (h *Handler) RenderSpectrum(c echo.Context) error {
	v, err := emotionsFromQuery(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return writePNG(c, h.svc.Spectrum(v))
}

// emotionsFromQuery reads all six dimensions from lower-case query keys.
// Values are clamped; missing or non-numeric values are rejected.
func emotionsFromQuery(q url.Values) (domain.EmotionVector, error) {
	m := make(map[string]float64, 6)
	for _, d := range domain.Dimensions() {
		key := queryKey(d)
		raw := q.Get(key)
		if raw == "" {
			return domain.EmotionVector{}, fmt.Errorf("%s is required", key)
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.EmotionVector{}, fmt.Errorf("%s must be a number", key)
		}
		m[d.String()] = x
	}
	return domain.EmotionsFromMap(m)
}

func queryKey(d domain.Dimension) string {
	return strings.ToLower(d.String())
}

func renderURL(kind string, v domain.EmotionVector, extra url.Values) string {
	q := url.Values{}
	for _, d := range domain.Dimensions() {
		q.Set(queryKey(d), strconv.FormatFloat(v.Get(d), 'f', -1, 64))
	}
	for k, vs := range extra {
		q[k] = vs
	}
	return "/v1/render/" + kind + ".png?" + q.Encode()
}

func toResponse(e domain.Entry) DreamResponse {
	posters := make([]PosterResp, len(e.Seeds))
	for i, seed := range e.Seeds {
		posters[i] = PosterResp{
			Seed: seed,
			URL: renderURL("poster", e.Analysis.Emotions, url.Values{
				"style": {string(e.Style)},
				"seed":  {strconv.FormatUint(seed, 10)},
			}),
		}
	}
	return DreamResponse{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Summary:   e.Analysis.Summary,
		Emotions:  e.Analysis.Emotions,
		Tarot: TarotResp{
			Shadow:   e.Analysis.Tarot.Shadow,
			Energy:   e.Analysis.Tarot.Energy,
			Guidance: e.Analysis.Tarot.Guidance,
		},
		Style: e.Style,
		Charts: ChartsResp{
			Radar:    renderURL("radar", e.Analysis.Emotions, nil),
			Spectrum: renderURL("spectrum", e.Analysis.Emotions, nil),
		},
		Posters: posters,
		Meta: MetaResp{
			Model:  e.Analysis.Model,
			Source: e.Analysis.Source,
		},
	}
}

func writePNG(c echo.Context, img image.Image) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return mapError(c, fmt.Errorf("encode png: %w", err))
	}
	// Renders are pure functions of the query, so they cache forever.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrEmptyDream),
		errors.Is(err, domain.ErrDreamTooLong),
		errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrMissingEmotion):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDreamNotFound), errors.Is(err, domain.ErrJournalDisabled):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
