package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pitstop/config"
	"pitstop/infras/otel"
	"pitstop/internal/domains/provider/model"
	"pitstop/internal/domains/provider/model/dto"
	"pitstop/internal/domains/provider/repository"
	"pitstop/shared"
	"pitstop/shared/cache"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
	"pitstop/shared/failure"
)

const (
	cacheGetProvider     = "provider:get"
	cacheGetAllProvider  = "provider:gets"
	cacheCountProvider   = "provider:count"
	cacheGetAllOfferings = "provider:services"
)

type Provider interface {
	Get(ctx context.Context, id string) (dto.ProviderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProvidersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Offerings(ctx context.Context, providerID string) (dto.GetOfferingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Provider
	offeringRepo repository.Offering
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Provider, offeringRepo repository.Offering, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Provider {
	return &serviceImpl{
		repo:         repo,
		offeringRepo: offeringRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProviderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProvider")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProvider, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for provider")

		return res, nil
	}

	provider, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return res, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty {
		return res, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	res.FromModel(provider)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save provider to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProvidersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllProviders")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProvider, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for providers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count providers")

		return res, fmt.Errorf("failed to count providers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get providers")

		return res, fmt.Errorf("failed to get providers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save providers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountProviders")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProvider, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for provider count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count providers")

		return res, fmt.Errorf("failed to count providers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save provider count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Offerings(ctx context.Context, providerID string) (res dto.GetOfferingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOfferings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllOfferings, providerID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for provider services")

		return res, nil
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(providerID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if provider exists")

		return res, fmt.Errorf("failed to check if provider exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOfferingProviderID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerID,
				Table:    model.OfferingTableName,
			},
			gDto.Filter{
				Field:    model.FieldOfferingActive,
				Operator: gDto.FilterOperatorEq,
				ArgName:  "offering_active",
				Value:    true,
				Table:    model.OfferingTableName,
			},
		},
	}

	offerings, err := s.offeringRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider services")

		return res, fmt.Errorf("failed to get provider services: %w", err)
	}

	res.FromModels(offerings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save provider services to cache")
		}
	}()

	return res, nil
}
