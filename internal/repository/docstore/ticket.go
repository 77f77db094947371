package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vedartha/erp-backend-go/internal/domain/ticket"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type ticketRepositoryImpl struct {
	store directory.Store
}

func NewTicketRepository(store directory.Store) ticket.Repository {
	return &ticketRepositoryImpl{store: store}
}

func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionTickets, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("get ticket %s: %w", id, err)
	}
	var t ticket.Ticket
	if err := directory.Decode(raw, &t); err != nil {
		return ticket.Ticket{}, fmt.Errorf("decode ticket %s: %w", id, err)
	}
	return t, nil
}

func (r *ticketRepositoryImpl) List(ctx context.Context) ([]ticket.Ticket, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionTickets)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return sortTickets(directory.DecodeAll[ticket.Ticket](raws))
}

func (r *ticketRepositoryImpl) ListByClientID(ctx context.Context, clientID string) ([]ticket.Ticket, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionTickets, directory.Eq("clientId", clientID))
	if err != nil {
		return nil, fmt.Errorf("query tickets by client: %w", err)
	}
	return sortTickets(directory.DecodeAll[ticket.Ticket](raws))
}

func sortTickets(tickets []ticket.Ticket, err error) ([]ticket.Ticket, error) {
	if err != nil {
		return nil, err
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].Date > tickets[j].Date })
	return tickets, nil
}

func (r *ticketRepositoryImpl) Put(ctx context.Context, t ticket.Ticket) error {
	return r.store.Put(ctx, directory.CollectionTickets, t.ID, t)
}

func (r *ticketRepositoryImpl) Update(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.ApplyBatch(ctx, []directory.Mutation{{
		Op:         directory.OpUpdate,
		Collection: directory.CollectionTickets,
		ID:         id,
		Fields:     fields,
	}})
	if errors.Is(err, directory.ErrNotFound) {
		return ticket.ErrTicketNotFound
	}
	return err
}
