package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/infras/s3"
	"studiodesk/internal/domains/gallery/model/dto"
	"studiodesk/shared"
	"studiodesk/shared/cache"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
)

const (
	cacheCategories = "gallery:categories"
	cachePhotos     = "gallery:photos"

	// photos are served from the high resolution sub-folder of a category
	resolutionFolder = "high"
	ignoredFile      = ".DS_Store"

	errCategoryNotFound = "category not found"
)

// Gallery lists the public portfolio stored under the gallery prefix of the bucket.
type Gallery interface {
	Categories(ctx context.Context) ([]string, error)
	LabeledCategories(ctx context.Context) ([]dto.Category, error)
	PhotoNames(ctx context.Context, category string) ([]string, error)
	Photos(ctx context.Context, category string) ([]dto.Photo, error)
}

type serviceImpl struct {
	storage s3.S3
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(storage s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Gallery {
	return &serviceImpl{
		storage: storage,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Categories(ctx context.Context) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Categories")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheCategories, &res); err == nil {
		log.Debug().Str("cacheKey", cacheCategories).Msg("cache hit for gallery categories")

		return res, nil
	}

	res, err = s.storage.ListPrefixes(ctx, constant.Empty, s.cfg.External.S3.GalleryPrefix)
	if err != nil {
		log.Error().Err(err).Msg("failed to list gallery categories")

		return nil, fmt.Errorf("failed to list gallery categories: %w", err)
	}

	if res == nil {
		res = []string{}
	}

	s.save(ctx, cacheCategories, res)

	return res, nil
}

func (s *serviceImpl) LabeledCategories(ctx context.Context) ([]dto.Category, error) {
	names, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return dto.CategoriesFromNames(names), nil
}

// PhotoNames returns the file names of a category in a fresh random order on
// every call. Unknown or empty categories are NotFound.
func (s *serviceImpl) PhotoNames(ctx context.Context, category string) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.PhotoNames")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validCategory(category) {
		return nil, failure.NotFound(errCategoryNotFound) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cachePhotos, category)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		res, err = s.listPhotos(ctx, category)
		if err != nil {
			return nil, err
		}

		s.save(ctx, cacheKey, res)
	}

	if len(res) == 0 {
		return nil, failure.NotFound(errCategoryNotFound) // nolint:wrapcheck
	}

	shuffled := make([]string, len(res))
	copy(shuffled, res)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled, nil
}

func (s *serviceImpl) Photos(ctx context.Context, category string) ([]dto.Photo, error) {
	names, err := s.PhotoNames(ctx, category)
	if err != nil {
		return nil, err
	}

	dir := s.photoDir(category)

	res := make([]dto.Photo, len(names))
	for i, name := range names {
		res[i] = dto.Photo{Name: name, URL: s.storage.PublicURL(path.Join(dir, name))}
	}

	return res, nil
}

func (s *serviceImpl) listPhotos(ctx context.Context, category string) ([]string, error) {
	dir := s.photoDir(category)

	keys, err := s.storage.ListObjects(ctx, constant.Empty, dir)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to list gallery photos")

		return nil, fmt.Errorf("failed to list gallery photos: %w", err)
	}

	names := make([]string, 0, len(keys))

	for _, key := range keys {
		name := strings.TrimPrefix(key, dir+"/")
		if name == "" || name == ignoredFile || strings.Contains(name, "/") {
			continue
		}

		names = append(names, name)
	}

	return names, nil
}

func (s *serviceImpl) photoDir(category string) string {
	return path.Join(s.cfg.External.S3.GalleryPrefix, category, resolutionFolder)
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save gallery listing to cache")
		}
	}()
}

func validCategory(category string) bool {
	return category != "" &&
		category != "." &&
		category != ".." &&
		!strings.ContainsAny(category, `/\`)
}
