package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/ticketing/internal/domain"
	"github.com/zvrva/ticketing/internal/service/issuance"
)

type TicketHandler struct {
	service issuance.IssuanceUseCase
}

type issueTicketRequest struct {
	PNR string `json:"pnr" binding:"required"`
}

type ticketResponse struct {
	TicketID       int64   `json:"ticket_id"`
	BoardingNumber string  `json:"boarding_number"`
	Fare           float64 `json:"fare"`
	PNR            string  `json:"pnr"`
	IssuedAt       string  `json:"issued_at"`
}

func NewTicketHandler(service issuance.IssuanceUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.issue)
}

func (h *TicketHandler) RegisterItineraries(router *gin.RouterGroup) {
	router.GET("/:pnr/fare", h.quoteFare)
}

func (h *TicketHandler) issue(c *gin.Context) {
	var req issueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issuer, ok := employeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing employee identity"})
		return
	}

	ticket, err := h.service.IssueTicket(c.Request.Context(), req.PNR, issuer)
	if err != nil {
		status, body := issuanceError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, ticketResponse{
		TicketID:       ticket.ID,
		BoardingNumber: ticket.BoardingNumber,
		Fare:           ticket.Fare,
		PNR:            req.PNR,
		IssuedAt:       ticket.IssuedAt.Format(time.RFC3339),
	})
}

func (h *TicketHandler) quoteFare(c *gin.Context) {
	breakdown, err := h.service.QuoteFare(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		if errors.Is(err, domain.ErrItineraryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// issuanceError maps domain errors to the HTTP contract: business rejections
// are 4xx, transient conflicts 503 with a retry hint.
func issuanceError(err error) (int, gin.H) {
	var capErr *domain.CapacityExceededError
	switch {
	case errors.Is(err, domain.ErrItineraryNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.As(err, &capErr):
		return http.StatusConflict, gin.H{"error": capErr.Error(), "flight_ids": capErr.FlightIDs}
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrCredentialCollision):
		return http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, retry", "retryable": true}
	default:
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}
}
