package service

import (
	"context"

	"storefront-backend/internal/domains/category"
	"storefront-backend/internal/shared/apperr"
	"storefront-backend/pkg/logger"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Failed to load categories", err)
		return nil, apperr.Persistence(category.ErrCodeCategoryLoad, "failed to load categories", err)
	}
	return categories, nil
}

func (s *categoryService) Tree(ctx context.Context) ([]*category.Node, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return category.BuildTree(categories), nil
}
