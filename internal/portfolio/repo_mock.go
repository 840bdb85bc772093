package portfolio

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type repoMock struct {
	items map[string]*Item
}

func NewMockPortfolioRepo() *repoMock {
	return &repoMock{
		items: make(map[string]*Item),
	}
}

func (r *repoMock) Insert(_ context.Context, item *Item) (*Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.ID = uuid.NewString()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *repoMock) Get(_ context.Context, id string) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (r *repoMock) Update(_ context.Context, id string, item *Item) (*Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	existing, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	r.items[id] = item
	return item, nil
}

func (r *repoMock) Delete(_ context.Context, id string) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	delete(r.items, id)
	return item, nil
}

func (r *repoMock) List(context.Context) ([]Item, error) {
	var items []Item
	for _, item := range r.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}
