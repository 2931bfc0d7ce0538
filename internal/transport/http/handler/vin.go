package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yotayard/yotayard/internal/domain"
	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/vin"
)

type vinDecoder interface {
	Decode(ctx context.Context, rawVIN string) (*domain.Vehicle, error)
}

type VINHandler struct {
	decoder vinDecoder
	logger  *slog.Logger
}

func NewVINHandler(decoder vinDecoder, logger *slog.Logger) *VINHandler {
	return &VINHandler{decoder: decoder, logger: logger.With("component", "vin_handler")}
}

type vinResponse struct {
	VIN          string `json:"vin"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Trim         string `json:"trim,omitempty"`
	Series       string `json:"series,omitempty"`
	BodyType     string `json:"body_type"`
	Transmission string `json:"transmission"`
	FuelType     string `json:"fuel_type"`
	Drivetrain   string `json:"drivetrain"`
	CabSize      string `json:"cab_size,omitempty"`
	Doors        int    `json:"doors,omitempty"`
	Engine       string `json:"engine,omitempty"`
}

// GET /vin/:vin
// Decode failures map to the sentinel errors: 400 for a malformed VIN,
// 404 when the source has no usable data, 502 when the lookup itself
// fails.
func (h *VINHandler) Decode(c *gin.Context) {
	v, err := h.decoder.Decode(c.Request.Context(), c.Param("vin"))
	if err != nil {
		switch {
		case errors.Is(err, vin.ErrVINLength):
			metrics.VINDecodesTotal.WithLabelValues("bad_vin").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": vin.ErrVINLength.Error()})
		case errors.Is(err, vin.ErrNoData):
			metrics.VINDecodesTotal.WithLabelValues("no_data").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": vin.ErrNoData.Error()})
		case errors.Is(err, vin.ErrIncompleteData):
			metrics.VINDecodesTotal.WithLabelValues("incomplete").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": vin.ErrIncompleteData.Error()})
		case errors.Is(err, vin.ErrLookupFailed):
			metrics.VINDecodesTotal.WithLabelValues("lookup_failed").Inc()
			h.logger.Error("vin lookup", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": vin.ErrLookupFailed.Error()})
		default:
			metrics.VINDecodesTotal.WithLabelValues("error").Inc()
			h.logger.Error("vin decode", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.VINDecodesTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, vinResponse{
		VIN:          v.VIN,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		Trim:         v.Trim,
		Series:       v.Series,
		BodyType:     string(v.BodyType),
		Transmission: string(v.Transmission),
		FuelType:     string(v.FuelType),
		Drivetrain:   string(v.Drivetrain),
		CabSize:      v.CabSize,
		Doors:        v.Doors,
		Engine:       v.Engine,
	})
}
