package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KirkDiggler/reservas/internal/models"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// createReservationRequest is the web form; it binds from form or JSON bodies
type createReservationRequest struct {
	Service string `form:"service" json:"service" binding:"required"`
	Date    string `form:"date" json:"date" binding:"required"`
	Contact string `form:"contact" json:"contact" binding:"required"`
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
}

// ListReservations handles GET /reservas, newest first
func (h *Handler) ListReservations(c *gin.Context) {
	output, err := h.reservations.ListReservations(c.Request.Context(), &reservation.ListReservationsInput{})
	if err != nil {
		h.logger.Error("ListReservations: failed to fetch reservations", zap.Error(err))
		c.String(http.StatusInternalServerError, "Erro ao buscar reservas")
		return
	}

	c.JSON(http.StatusOK, output.Reservations)
}

// CreateReservation handles POST /reservas, the web-form booking path
func (h *Handler) CreateReservation(c *gin.Context) {
	var body createReservationRequest
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	service := models.Service(strings.ToLower(strings.TrimSpace(body.Service)))
	output, err := h.reservations.BookReservation(c.Request.Context(), &reservation.SaveReservationInput{
		Service:        service,
		Date:           strings.TrimSpace(body.Date),
		Contact:        strings.TrimSpace(body.Contact),
		RequesterName:  body.Name,
		RequesterEmail: body.Email,
	})
	if err != nil {
		h.writeBookingError(c, service, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     output.ReservationID,
		"status": models.ReservationStatusPending,
	})
}

func (h *Handler) writeBookingError(c *gin.Context, service models.Service, err error) {
	var storageErr *reservation.StorageError

	switch {
	case errors.Is(err, reservation.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "unavailable",
			"message": string(service) + " já está reservado para esta data",
		})
	case errors.Is(err, reservation.ErrInvalidService),
		errors.Is(err, reservation.ErrInvalidDate),
		errors.Is(err, reservation.ErrMissingContact):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid reservation",
			"message": err.Error(),
		})
	case errors.As(err, &storageErr):
		h.logger.Error("CreateReservation: storage failure", zap.String("op", storageErr.Op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro ao processar reserva. Por favor, tente novamente.",
		})
	default:
		h.logger.Error("CreateReservation: unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro ao processar reserva. Por favor, tente novamente.",
		})
	}
}
