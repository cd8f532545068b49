package service

import (
	"context"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
)

// ItemService defines the interface for catalog business logic
type ItemService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	FindItem(ctx context.Context, name, price string) (*domain.Item, error)
	CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error)
}

// ItemServiceImpl implements the ItemService interface
type ItemServiceImpl struct {
	repository repository.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(repo repository.ItemRepository) ItemService {
	return &ItemServiceImpl{repository: repo}
}

// ListItems returns the whole catalog
func (s *ItemServiceImpl) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repository.ListItems(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_items", Err: err}
	}
	return items, nil
}

// SearchItems returns items whose name contains the filter name and whose
// price is at most the filter bound
func (s *ItemServiceImpl) SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.repository.SearchItems(ctx, filter)
	if err != nil {
		return nil, &ServiceError{Op: "search_items", Err: err}
	}
	return items, nil
}

// FindItem returns the first item with exactly this name and price.
// The error wraps repository.ErrNotFound when there is no match.
func (s *ItemServiceImpl) FindItem(ctx context.Context, name, price string) (*domain.Item, error) {
	item, err := s.repository.FindItemByNameAndPrice(ctx, name, price)
	if err != nil {
		return nil, &ServiceError{Op: "find_item", Err: err}
	}
	return item, nil
}

// CreateItem adds an item to the catalog. Duplicates are accepted.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error) {
	item, err := s.repository.CreateItem(ctx, input)
	if err != nil {
		return nil, &ServiceError{Op: "create_item", Err: err}
	}
	return item, nil
}
