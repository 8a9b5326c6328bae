package service

import (
	"context"
	"log/slog"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/utils"
)

type CatalogRepo interface {
	GetPackage(ctx context.Context, slug string) (entities.Package, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// catalogService каталог пакетов с LRU кэшем поверх базы
type catalogService struct {
	logger *slog.Logger
	repo   CatalogRepo
	cache  Cache
}

func NewCatalogService(logger *slog.Logger, repo CatalogRepo, cache Cache) *catalogService {
	return &catalogService{
		logger: logger.With(slog.String("service", "catalog")),
		repo:   repo,
		cache:  cache,
	}
}

func (s *catalogService) GetPackage(ctx context.Context, slug string) (entities.Package, error) {
	if data, ok := s.cache.Get(slug); ok {
		var pkg entities.Package
		err := pkg.Unmarshal(data)
		if err == nil {
			return pkg, nil
		}
		s.logger.Error("failed to unmarshal cached package", slog.String("slug", slug), slog.Any("error", err))
	}

	var pkg entities.Package
	err := utils.Retry(ctx, utils.DefaultRetry, func() error {
		var err error
		pkg, err = s.repo.GetPackage(ctx, slug)
		return err
	}, entities.ErrPackageNotFound)
	if err != nil {
		return entities.Package{}, err
	}

	data, err := pkg.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal package", slog.String("slug", slug), slog.Any("error", err))
		return pkg, nil
	}
	s.cache.Set(slug, data)
	return pkg, nil
}
