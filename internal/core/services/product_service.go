package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
	portssvc "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/services"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/dto"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepository
}

func NewProductService(repo portsrepo.ProductRepository, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.ProductSvcFacade {
	svc := &productService{productRepo: repo}
	svc.OrganizationAuthorizer = authorizer
	return svc
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, organizationID, userID string, req dto.CreateProductRequest) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() || req.UnitCost.IsNegative() {
		return nil, apperrors.NewValidationFailedError("unit price and unit cost cannot be negative")
	}
	product := domain.Product{
		ProductID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		UnitPrice:      req.UnitPrice,
		UnitCost:       req.UnitCost,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) ListProducts(ctx context.Context, organizationID, userID string, activeOnly bool) ([]domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListProducts(ctx, organizationID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, organizationID, productID, userID string) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.productRepo.FindProductByID(ctx, organizationID, productID)
}

func (s *productService) UpdateProduct(ctx context.Context, organizationID, productID, userID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindProductByID(ctx, organizationID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.UnitCost != nil {
		product.UnitCost = *req.UnitCost
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if product.UnitPrice.IsNegative() || product.UnitCost.IsNegative() {
		return nil, apperrors.NewValidationFailedError("unit price and unit cost cannot be negative")
	}

	product.Touch(userID, time.Now())
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}
