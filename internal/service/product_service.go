package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/northlake-labs/product-service/internal/domain"
	"github.com/northlake-labs/product-service/internal/events"
)

// EventPublisher emits product lifecycle events. Publishing is best-effort:
// a failure is logged by the publisher and never surfaced to the client.
type EventPublisher interface {
	Publish(ctx context.Context, event events.ProductEvent) error
}

type ProductService struct {
	productRepo domain.ProductRepository
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewProductService wires the service. publisher may be nil when event
// publishing is disabled.
func NewProductService(productRepo domain.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, in *domain.ProductInput) (*domain.Product, error) {
	in.Normalize()
	if err := in.RequireCore(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product := in.NewProduct(time.Now().UTC())

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("name", product.Name),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name))

	s.publish(ctx, events.TypeProductCreated, product)

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, oid)
}

func (s *ProductService) ListProducts(ctx context.Context, filter domain.ListFilter) ([]domain.Product, int64, error) {
	return s.productRepo.Find(ctx, filter)
}

// ReplaceProduct handles full updates. The observed contract merges the
// supplied fields rather than resetting omitted ones to defaults, so it
// differs from a partial update only in requiring name and price.
func (s *ProductService) ReplaceProduct(ctx context.Context, id string, in *domain.ProductInput) (*domain.Product, error) {
	in.Normalize()
	if err := in.RequireCore(); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, id, in)
}

// PatchProduct merges any subset of mutable fields into the record.
func (s *ProductService) PatchProduct(ctx context.Context, id string, in *domain.ProductInput) (*domain.Product, error) {
	in.Normalize()
	return s.applyUpdate(ctx, id, in)
}

func (s *ProductService) applyUpdate(ctx context.Context, id string, in *domain.ProductInput) (*domain.Product, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, oid, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))

	s.publish(ctx, events.TypeProductUpdated, product)

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))

	s.publish(ctx, events.TypeProductDeleted, product)

	return product, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, product *domain.Product) {
	if s.publisher == nil {
		return
	}
	// The publisher logs its own failures; a lost event never fails the request.
	_ = s.publisher.Publish(ctx, events.NewProductEvent(eventType, product))
}
