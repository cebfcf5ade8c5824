package service

import (
	"context"

	"github.com/foxsolid23df-IA/sistema-ventas/internal/dto"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/model"
	"github.com/foxsolid23df-IA/sistema-ventas/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	lowStock int
}

// NewProductService builds the catalog service. lowStockThreshold is the
// store-wide restock level used when a request does not name its own.
func NewProductService(repo repository.ProductRepository, rdb *redis.Client, lowStockThreshold int) ProductService {
	return &productService{repo: repo, rdb: rdb, lowStock: lowStockThreshold}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Barcode:  req.Barcode,
		ImageURL: req.ImageURL,
		Active:   true,
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	} else {
		p.MinStock = s.lowStock
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &InvalidRequestError{Msg: "producto no encontrado"}
	}
	return productToResponse(p), nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, &InvalidRequestError{Msg: "producto no encontrado"}
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold < 1 {
		threshold = s.lowStock
	}
	products, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &InvalidRequestError{Msg: "producto no encontrado"}
	}
	oldBarcode := p.Barcode

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidatePriceCache(ctx, oldBarcode)
	s.invalidatePriceCache(ctx, p.Barcode)
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return &InvalidRequestError{Msg: "producto no encontrado"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p.Barcode)
	return nil
}

// invalidatePriceCache drops the public price-check cache entry. Best
// effort — a stale entry expires on its own TTL anyway.
func (s *productService) invalidatePriceCache(ctx context.Context, barcode *string) {
	if s.rdb == nil || barcode == nil || *barcode == "" {
		return
	}
	_ = s.rdb.Del(ctx, "price:"+*barcode).Err()
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Barcode:  p.Barcode,
		ImageURL: p.ImageURL,
		Active:   p.Active,
	}
}
