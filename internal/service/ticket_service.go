package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/supportdesk/supportdesk/internal/auth"
	"github.com/supportdesk/supportdesk/internal/domain"
	"github.com/supportdesk/supportdesk/internal/events"
	"github.com/supportdesk/supportdesk/internal/observability"
	"github.com/supportdesk/supportdesk/internal/repository"
	apperrors "github.com/supportdesk/supportdesk/pkg/util"
)

const (
	msgLoginRequired = "You must be logged in to create a ticket"
	msgTicketCreated = "Ticket created successfully!"
	msgTicketFailure = "An error occurred while creating the ticket"
)

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Priority    domain.TicketPriority
}

// TicketService coordinates ticket workflows. Each workflow receives the
// raw session cookie value and resolves the acting user itself; the
// transport layer only extracts the cookie.
type TicketService struct {
	tickets    repository.TicketRepository
	resolver   *auth.Resolver
	recorder   *observability.Recorder
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Resolver   *auth.Resolver
	Recorder   *observability.Recorder
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		resolver:   deps.Resolver,
		recorder:   deps.Recorder,
		dispatcher: deps.Dispatcher,
	}
}

// Create makes a ticket owned by the session's user. Anonymous callers are
// rejected before validation runs.
func (s *TicketService) Create(ctx context.Context, sessionToken string, input TicketCreateInput) (domain.Result, *domain.Ticket) {
	user := s.resolver.Resolve(ctx, sessionToken)
	if user == nil {
		s.recorder.Event(ctx, "ticket_create_unauthorized", "ticket", nil, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusUnauthorized, msgLoginRequired), nil
	}

	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" || input.Priority == "" {
		s.recorder.Event(ctx, "ticket_validation_failed", "ticket",
			map[string]any{"subject": subject, "priority": input.Priority}, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusBadRequest, msgFieldsRequired), nil
	}

	ticket := &domain.Ticket{
		Subject:     subject,
		Description: description,
		Priority:    input.Priority,
		UserID:      user.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.recorder.Event(ctx, "ticket_store_failed", "ticket",
			map[string]any{"user_id": user.ID}, observability.SeverityError, err)
		return domain.Fail(http.StatusInternalServerError, msgTicketFailure), nil
	}

	s.recorder.Event(ctx, "ticket_created", "ticket",
		map[string]any{"ticket_id": ticket.ID, "user_id": user.ID}, observability.SeverityInfo, nil)
	s.publish(ctx, events.Event{
		Type:   events.EventTicketCreated,
		UserID: user.ID,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	return domain.Ok(http.StatusCreated, msgTicketCreated), ticket
}

// List returns the session user's tickets, newest first. An anonymous or
// invalid session yields an empty slice rather than an error, as does an
// unexpected store failure.
func (s *TicketService) List(ctx context.Context, sessionToken string) []domain.Ticket {
	user := s.resolver.Resolve(ctx, sessionToken)
	if user == nil {
		s.recorder.Event(ctx, "ticket_list_unauthorized", "ticket", nil, observability.SeverityWarning, nil)
		return []domain.Ticket{}
	}

	tickets, err := s.tickets.ListByUser(ctx, user.ID)
	if err != nil {
		s.recorder.Event(ctx, "ticket_list_failed", "ticket",
			map[string]any{"user_id": user.ID}, observability.SeverityError, err)
		return []domain.Ticket{}
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	s.recorder.Event(ctx, "ticket_list_fetched", "ticket",
		map[string]any{"user_id": user.ID, "count": len(tickets)}, observability.SeverityInfo, nil)
	return tickets
}

// GetByID looks a ticket up by identifier. There is deliberately no
// ownership check here; the lookup is open to any caller.
func (s *TicketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recorder.Event(ctx, "ticket_not_found", "ticket",
				map[string]any{"ticket_id": id}, observability.SeverityWarning, nil)
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		s.recorder.Event(ctx, "ticket_fetch_failed", "ticket",
			map[string]any{"ticket_id": id}, observability.SeverityError, err)
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}

func stampEvent(event events.Event) events.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}
