package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/supportdesk/internal/api/dto"
	"github.com/supportdesk/supportdesk/internal/auth"
	"github.com/supportdesk/supportdesk/internal/domain"
	"github.com/supportdesk/supportdesk/internal/service"
	apperrors "github.com/supportdesk/supportdesk/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	}
	result, _ := h.service.Create(c.Context(), c.Cookies(auth.SessionCookieName), input)
	return c.Status(result.Status).JSON(result)
}

// ListTickets GET /tickets. Anonymous sessions see an empty list.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.service.List(c.Context(), c.Cookies(auth.SessionCookieName))
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		CreatedAt:   ticket.CreatedAt,
	}
}
