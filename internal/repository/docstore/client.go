package docstore

import (
	"context"
	"fmt"

	"github.com/vedartha/erp-backend-go/internal/domain/client"
	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

type clientRepositoryImpl struct {
	store directory.Store
}

func NewClientRepository(store directory.Store) client.Repository {
	return &clientRepositoryImpl{store: store}
}

func (r *clientRepositoryImpl) GetByID(ctx context.Context, id string) (client.Client, error) {
	raw, err := r.store.GetByID(ctx, directory.CollectionClients, id)
	if err != nil {
		if err == directory.ErrNotFound {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("get client %s: %w", id, err)
	}
	var c client.Client
	if err := directory.Decode(raw, &c); err != nil {
		return client.Client{}, fmt.Errorf("decode client %s: %w", id, err)
	}
	return c, nil
}

func (r *clientRepositoryImpl) GetByPortalLogin(ctx context.Context, id, portalPassword string) (client.Client, error) {
	return r.queryOne(ctx,
		directory.Eq("id", id),
		directory.Eq("portalPassword", portalPassword),
	)
}

func (r *clientRepositoryImpl) GetByEmail(ctx context.Context, email string) (client.Client, error) {
	return r.queryOne(ctx, directory.Eq("email", email))
}

func (r *clientRepositoryImpl) queryOne(ctx context.Context, preds ...directory.Predicate) (client.Client, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionClients, preds...)
	if err != nil {
		return client.Client{}, fmt.Errorf("query clients: %w", err)
	}
	if len(raws) == 0 {
		return client.Client{}, client.ErrClientNotFound
	}
	var c client.Client
	if err := directory.Decode(raws[0], &c); err != nil {
		return client.Client{}, fmt.Errorf("decode client: %w", err)
	}
	return c, nil
}

func (r *clientRepositoryImpl) List(ctx context.Context) ([]client.Client, error) {
	raws, err := r.store.QueryEquals(ctx, directory.CollectionClients)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return directory.DecodeAll[client.Client](raws)
}

func (r *clientRepositoryImpl) Put(ctx context.Context, c client.Client) error {
	return r.store.Put(ctx, directory.CollectionClients, c.ID, c)
}

func (r *clientRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, directory.CollectionClients, id)
}
