package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/tile"
	"lintang/mapview/pkg/util"
)

type MapService interface {
	Distance(ctx context.Context, from, to *geo.LatLng) float64
	FitBounds(ctx context.Context, b *geo.LatLngBounds, width, height int, padding float64) (*geo.LatLng, int)
	Viewport(ctx context.Context, center *geo.LatLng, zoom, width, height int) (*geo.LatLngBounds, []tile.Coord, []*feature.Marker)
	MarkersInBBox(ctx context.Context, b *geo.LatLngBounds) ([]feature.Marker, error)
	EncodePath(ctx context.Context, points []geo.LatLng) (string, *geo.LatLngBounds)
	SnapToPath(ctx context.Context, points []geo.LatLng, ll *geo.LatLng) *geo.LatLng
}

type MapHandler struct {
	svc          MapService
	promeMetrics *metrics
}

func MapRouter(r *chi.Mux, svc MapService, m *metrics) {
	handler := &MapHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/map", func(r chi.Router) {
			r.Post("/distance", handler.distance)
			r.Post("/fit-bounds", handler.fitBounds)
			r.Post("/viewport", handler.viewport)
			r.Get("/markers", handler.markersInBBox)
			r.Post("/path/encode", handler.encodePath)
			r.Post("/path/snap", handler.snapToPath)
		})
	})
}

// coordinates in request bodies take every LatLng input shape:
// [lat,lng], [lat,lng,alt], {"lat":..,"lng":..} or the "lon" alias

type DistanceRequest struct {
	From *geo.LatLng `json:"from" validate:"required"`
	To   *geo.LatLng `json:"to" validate:"required"`
}

func (d *DistanceRequest) Bind(r *http.Request) error {
	if d.From == nil || d.To == nil {
		return errors.New("invalid request")
	}
	return nil
}

type DistanceResponse struct {
	From           *geo.LatLng `json:"from"`
	To             *geo.LatLng `json:"to"`
	DistanceMeters float64     `json:"distance_meters"`
}

func (h *MapHandler) distance(w http.ResponseWriter, r *http.Request) {
	data := &DistanceRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv, err := validateStruct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("distance").Inc()
	dist := h.svc.Distance(r.Context(), data.From, data.To)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, DistanceResponse{
		From:           data.From,
		To:             data.To,
		DistanceMeters: util.RoundFloat(dist, 2),
	})
}

type FitBoundsRequest struct {
	Bounds  *geo.LatLngBounds `json:"bounds" validate:"required"`
	Width   int               `json:"width" validate:"required,gt=0"`
	Height  int               `json:"height" validate:"required,gt=0"`
	Padding float64           `json:"padding" validate:"gte=0"`
}

func (f *FitBoundsRequest) Bind(r *http.Request) error {
	if f.Bounds == nil || !f.Bounds.IsValid() {
		return errors.New("invalid bounds")
	}
	return nil
}

type FitBoundsResponse struct {
	Center *geo.LatLng `json:"center"`
	Zoom   int         `json:"zoom"`
}

func (h *MapHandler) fitBounds(w http.ResponseWriter, r *http.Request) {
	data := &FitBoundsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv, err := validateStruct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("fit_bounds").Inc()
	center, zoom := h.svc.FitBounds(r.Context(), data.Bounds, data.Width, data.Height, data.Padding)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, FitBoundsResponse{Center: center, Zoom: zoom})
}

type ViewportRequest struct {
	Center *geo.LatLng `json:"center" validate:"required"`
	Zoom   int         `json:"zoom" validate:"gte=0,lte=19"`
	Width  int         `json:"width" validate:"required,gt=0"`
	Height int         `json:"height" validate:"required,gt=0"`
}

func (v *ViewportRequest) Bind(r *http.Request) error {
	if v.Center == nil {
		return errors.New("invalid request")
	}
	return nil
}

type ViewportResponse struct {
	Bounds  *geo.LatLngBounds `json:"bounds"`
	BBox    string            `json:"bbox"`
	Tiles   []string          `json:"tiles"`
	Markers []*feature.Marker `json:"markers"`
}

func (h *MapHandler) viewport(w http.ResponseWriter, r *http.Request) {
	data := &ViewportRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv, err := validateStruct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("viewport").Inc()
	bounds, tiles, markers := h.svc.Viewport(r.Context(), data.Center, data.Zoom, data.Width, data.Height)

	tileIDs := make([]string, 0, len(tiles))
	for _, t := range tiles {
		tileIDs = append(tileIDs, t.String())
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ViewportResponse{
		Bounds:  bounds,
		BBox:    bounds.ToBBoxString(),
		Tiles:   tileIDs,
		Markers: markers,
	})
}

type MarkersResponse struct {
	BBox    string           `json:"bbox"`
	Markers []feature.Marker `json:"markers"`
}

func (h *MapHandler) markersInBBox(w http.ResponseWriter, r *http.Request) {
	bounds, err := parseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("markers_bbox").Inc()
	markers, err := h.svc.MarkersInBBox(r.Context(), bounds)
	if err != nil {
		render.Render(w, r, ErrInternalServerErrorRend(errors.New("internal server error")))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MarkersResponse{BBox: bounds.ToBBoxString(), Markers: markers})
}

// parseBBox reads the "west,south,east,north" bbox query format.
func parseBBox(s string) (*geo.LatLngBounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must be west,south,east,north, got %q", s)
	}
	nums := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox element %q is not a number", p)
		}
		nums[i] = f
	}
	sw, err := geo.New(nums[1], nums[0])
	if err != nil {
		return nil, err
	}
	ne, err := geo.New(nums[3], nums[2])
	if err != nil {
		return nil, err
	}
	return geo.NewBounds(sw, ne), nil
}

type PathRequest struct {
	Points []geo.LatLng `json:"points" validate:"required,min=2"`
}

func (p *PathRequest) Bind(r *http.Request) error {
	if len(p.Points) < 2 {
		return errors.New("path needs at least 2 points")
	}
	return nil
}

type EncodePathResponse struct {
	Polyline string            `json:"polyline"`
	Bounds   *geo.LatLngBounds `json:"bounds"`
	BBox     string            `json:"bbox"`
}

func (h *MapHandler) encodePath(w http.ResponseWriter, r *http.Request) {
	data := &PathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv, err := validateStruct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("encode_path").Inc()
	encoded, bounds := h.svc.EncodePath(r.Context(), data.Points)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, EncodePathResponse{
		Polyline: encoded,
		Bounds:   bounds,
		BBox:     bounds.ToBBoxString(),
	})
}

type SnapRequest struct {
	Points []geo.LatLng `json:"points" validate:"required,min=2"`
	Point  *geo.LatLng  `json:"point" validate:"required"`
}

func (s *SnapRequest) Bind(r *http.Request) error {
	if len(s.Points) < 2 || s.Point == nil {
		return errors.New("invalid request")
	}
	return nil
}

type SnapResponse struct {
	Snapped *geo.LatLng `json:"snapped"`
}

func (h *MapHandler) snapToPath(w http.ResponseWriter, r *http.Request) {
	data := &SnapRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if vv, err := validateStruct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	h.promeMetrics.GeoQueryCount.WithLabelValues("snap_path").Inc()
	snapped := h.svc.SnapToPath(r.Context(), data.Points, data.Point)
	if snapped != nil {
		snapped.Lat = util.TruncateFloat64(snapped.Lat, 6)
		snapped.Lng = util.TruncateFloat64(snapped.Lng, 6)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SnapResponse{Snapped: snapped})
}

func validateStruct(data interface{}) ([]error, error) {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		return translateError(err, trans), err
	}
	return nil, nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}
