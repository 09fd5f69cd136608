package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/freight-quoter/internal/common"
	"github.com/noah-isme/freight-quoter/internal/dataset"
	"github.com/noah-isme/freight-quoter/internal/tariff"
)

// Pallet footprint presets offered by the quoting form.
const (
	PalletEUR      = "EUR"      // 1.2 x 0.8 m
	PalletAmerican = "AMERICAN" // 1.2 x 1.0 m
	PalletCustom   = "CUSTOM"
)

// Handler exposes the quoting API over HTTP.
type Handler struct {
	Svc      *Service
	Store    *dataset.Store
	Validate *validator.Validate
}

type quoteRequest struct {
	Country     string  `json:"country" validate:"required"`
	ZipPrefix   string  `json:"zipPrefix" validate:"required,min=1,max=2"`
	PalletType  string  `json:"palletType" validate:"omitempty,oneof=EUR AMERICAN CUSTOM"`
	Length      float64 `json:"length" validate:"gte=0,lte=13.6"`
	Width       float64 `json:"width" validate:"gte=0,lte=3"`
	Height      float64 `json:"height" validate:"gte=0,lte=3"`
	UnitWeight  float64 `json:"unitWeight" validate:"gte=0,lte=2000"`
	Quantity    int     `json:"quantity" validate:"gte=1,lte=50"`
	Hazmat      bool    `json:"hazmat"`
	Delivery    bool    `json:"delivery"`
	Appointment bool    `json:"appointment"`
}

// Create prices a shipment and returns the quote with its surcharge breakdown.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", validationDetails(err))
		return
	}

	shipment := tariff.ShipmentRequest{
		Country:     req.Country,
		ZipPrefix:   req.ZipPrefix,
		Hazmat:      req.Hazmat,
		Delivery:    req.Delivery,
		Appointment: req.Appointment,
		Length:      req.Length,
		Width:       req.Width,
		Height:      req.Height,
		UnitWeight:  req.UnitWeight,
		Quantity:    req.Quantity,
	}
	switch strings.ToUpper(strings.TrimSpace(req.PalletType)) {
	case PalletEUR:
		shipment.Length, shipment.Width = 1.2, 0.8
	case PalletAmerican:
		shipment.Length, shipment.Width = 1.2, 1.0
	}

	q, err := h.Svc.Quote(r.Context(), shipment)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"id":                uuid.NewString(),
			"basePrice":         q.BasePrice,
			"totalPrice":        q.TotalPrice,
			"billableWeight":    q.BillableWeight,
			"bracketKg":         q.BracketKg,
			"zoneCode":          q.ZoneCode,
			"departureSchedule": q.DepartureSchedule,
			"transitTime":       q.TransitTime,
			"lines":             q.Lines,
		},
	})
}

// Countries lists the destinations accepted by the quote form.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Store.Get(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ds.CountryNames()})
}

// Routes returns the candidate rate rows for a lane, in dataset order.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	zip := strings.TrimSpace(r.URL.Query().Get("zip"))
	if country == "" || zip == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "country and zip query parameters are required", nil)
		return
	}
	ds, err := h.Store.Get(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}
	rows := ds.RoutesFor(country, zip)
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"zoneCode":          row.ZoneCode,
			"departureSchedule": row.DepartureSchedule,
			"transitTime":       row.TransitTime,
			"hazmatVariant":     row.HazmatVariant,
			"deliveryVariant":   row.DeliveryVariant,
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// DatasetStatus reports on the cached dataset without forcing a load.
func (h *Handler) DatasetStatus(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.Info()})
}

// DatasetReload forces a reload of the tariff workbook and surfaces load
// failures to the caller. The previous dataset stays active on failure.
func (h *Handler) DatasetReload(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reload(r.Context()); err != nil {
		writeLoadError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.Info()})
}

func writeQuoteError(w http.ResponseWriter, err error) {
	var (
		invalid  *tariff.InvalidInputError
		notFound *tariff.NoTariffForRouteError
		oor      *tariff.WeightOutOfRangeError
		unknown  *tariff.UnknownZoneError
	)
	switch {
	case errors.As(err, &invalid):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", invalid.Error(), nil)
	case errors.As(err, &notFound):
		common.JSONError(w, http.StatusNotFound, "NO_TARIFF", notFound.Error(), nil)
	case errors.As(err, &oor):
		common.JSONError(w, http.StatusUnprocessableEntity, "WEIGHT_OUT_OF_RANGE", oor.Error(), map[string]any{
			"maxBracketKg": oor.MaxBracket,
		})
	case errors.As(err, &unknown):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_ZONE", unknown.Error(), nil)
	default:
		writeLoadError(w, err)
	}
}

func writeLoadError(w http.ResponseWriter, err error) {
	var (
		sheetMissing   *tariff.SheetMissingError
		headerNotFound *tariff.HeaderNotFoundError
		malformed      *tariff.MalformedSourceError
	)
	switch {
	case errors.Is(err, tariff.ErrSourceNotFound):
		common.JSONError(w, http.StatusServiceUnavailable, "SOURCE_NOT_FOUND", err.Error(), nil)
	case errors.As(err, &sheetMissing), errors.As(err, &headerNotFound), errors.As(err, &malformed):
		common.JSONError(w, http.StatusBadGateway, "BAD_DATASET", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusServiceUnavailable, "DATASET_UNAVAILABLE", "tariff dataset unavailable", nil)
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
