// Package service implements the poem record operations: it resolves
// existence, consults the access policy and delegates to a repository.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/suryaansh001/shayari-backend/internal/access"
	"github.com/suryaansh001/shayari-backend/internal/apperrors"
	"github.com/suryaansh001/shayari-backend/internal/cache"
	"github.com/suryaansh001/shayari-backend/internal/id"
	"github.com/suryaansh001/shayari-backend/internal/shayari"
	"github.com/suryaansh001/shayari-backend/internal/shayari/repository"
	"github.com/suryaansh001/shayari-backend/internal/validation"
	"github.com/suryaansh001/shayari-backend/pkg/logger"
	"github.com/suryaansh001/shayari-backend/pkg/metrics"
	"go.uber.org/zap"
)

const (
	msgNotFound      = "Shayari not found"
	msgRequired      = "Title and content required"
	msgInvalidEmoji  = "Invalid emoji"
	msgPrivateReact  = "Cannot react to private shayari"
	msgAccessDenied  = "Access denied"
	detailStorage    = "storage unavailable"
	detailIDGenerate = "id generation failed"
)

// Service defines the poem business operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, who access.Identity, in shayari.CreateInput) (*shayari.Shayari, error)
	Get(ctx context.Context, who access.Identity, id string) (*shayari.Shayari, error)
	ListPublic(ctx context.Context) ([]*shayari.Shayari, error)
	ListAll(ctx context.Context, who access.Identity) ([]*shayari.Shayari, error)
	Update(ctx context.Context, who access.Identity, id string, in shayari.UpdateInput) (*shayari.Shayari, error)
	Delete(ctx context.Context, who access.Identity, id string) error
	React(ctx context.Context, who access.Identity, id, emoji string) (*shayari.Shayari, error)
	Ready(ctx context.Context) error
}

// ListCache holds a copy of the public listing. SetPublic must refuse a
// listing whose generation predates the latest InvalidatePublic, so a record
// made private is never written back by a reader that saw it public.
type ListCache interface {
	GetPublic(ctx context.Context) ([]*shayari.Shayari, error)
	PublicGeneration(ctx context.Context) (int64, error)
	SetPublic(ctx context.Context, gen int64, list []*shayari.Shayari) error
	InvalidatePublic(ctx context.Context) error
}

type Option func(*service)

func WithCache(c ListCache) Option { return func(s *service) { s.cache = c } }

func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *service) { s.newID = gen }
}

// New returns a Service backed by repo.
func New(repo repository.Repository, opts ...Option) Service {
	s := &service{
		repo:     repo,
		validate: validation.New(),
		now:      time.Now,
		newID:    id.NewShayariID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...Option) Service {
	return New(repository.NewMemoryRepo(), opts...)
}

type service struct {
	repo     repository.Repository
	cache    ListCache
	validate *validation.Validator
	now      func() time.Time
	newID    func() (string, error)
}

func (s *service) Create(ctx context.Context, who access.Identity, in shayari.CreateInput) (*shayari.Shayari, error) {
	if err := s.authorize(who, access.Create, access.None); err != nil {
		return nil, err
	}
	in.Prepare()
	if err := s.validate.Struct(in, msgRequired); err != nil {
		return nil, err
	}
	newID, err := s.newID()
	if err != nil {
		return nil, s.internal(detailIDGenerate, err)
	}
	now := s.now()
	rec := &shayari.Shayari{
		ID:        newID,
		Title:     in.Title,
		Content:   in.Content,
		MoodTags:  in.MoodTags,
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsPublic != nil {
		rec.IsPublic = *in.IsPublic
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, s.internal(detailStorage, err)
	}
	s.mutated(ctx, "create", rec.ID)
	return rec, nil
}

// Get reports NotFound before consulting the policy. A private record is
// always Unauthorized for callers without a valid token.
func (s *service) Get(ctx context.Context, who access.Identity, id string) (*shayari.Shayari, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if access.Decide(who, access.Read, access.VisibilityOf(rec.IsPublic)) == access.Deny {
		metrics.AccessDenied.WithLabelValues(access.Read.String()).Inc()
		return nil, apperrors.Unauthorized(msgAccessDenied)
	}
	return rec, nil
}

func (s *service) ListPublic(ctx context.Context) ([]*shayari.Shayari, error) {
	gen, cacheable := int64(0), false
	if s.cache != nil {
		list, err := s.cache.GetPublic(ctx)
		switch {
		case err == nil:
			metrics.PublicCacheLookups.WithLabelValues("hit").Inc()
			return list, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.PublicCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.PublicCacheLookups.WithLabelValues("error").Inc()
			logger.L().Warn("public listing cache read failed", zap.Error(err))
		}
		if gen, err = s.cache.PublicGeneration(ctx); err == nil {
			cacheable = true
		} else {
			logger.L().Warn("public listing cache generation read failed", zap.Error(err))
		}
	}
	list, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, s.internal(detailStorage, err)
	}
	if cacheable {
		switch err := s.cache.SetPublic(ctx, gen, list); {
		case errors.Is(err, cache.ErrStale):
			logger.L().Debug("public listing changed while reading, not cached")
		case err != nil:
			logger.L().Warn("public listing cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

func (s *service) ListAll(ctx context.Context, who access.Identity) ([]*shayari.Shayari, error) {
	if err := s.authorize(who, access.ListAll, access.None); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, s.internal(detailStorage, err)
	}
	return list, nil
}

// Update replaces every editable field; omitted fields are not merged.
func (s *service) Update(ctx context.Context, who access.Identity, id string, in shayari.UpdateInput) (*shayari.Shayari, error) {
	if err := s.authorize(who, access.Update, access.None); err != nil {
		return nil, err
	}
	rec, err := s.repo.Replace(ctx, id, in.Replacement(), s.now())
	if err != nil {
		return nil, s.storageErr(err)
	}
	s.mutated(ctx, "update", id)
	return rec, nil
}

func (s *service) Delete(ctx context.Context, who access.Identity, id string) error {
	if err := s.authorize(who, access.Delete, access.None); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storageErr(err)
	}
	s.mutated(ctx, "delete", id)
	return nil
}

// React validates the emoji before touching storage. The increment itself
// is conditional on the record still being public, so a record made
// private or deleted after the policy check is never counted.
func (s *service) React(ctx context.Context, who access.Identity, id, emoji string) (*shayari.Shayari, error) {
	e, ok := shayari.ParseEmoji(emoji)
	if !ok {
		return nil, apperrors.Validation(msgInvalidEmoji)
	}
	var updated *shayari.Shayari
	// a lost race is resolved again once; a record toggled private and back
	// between the check and the increment gets a second attempt
	for attempt := 0; attempt < 2; attempt++ {
		rec, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.reactAllowed(who, rec); err != nil {
			return nil, err
		}
		updated, err = s.repo.IncrementReaction(ctx, id, e, s.now())
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, s.internal(detailStorage, err)
		}
	}
	if updated == nil {
		return nil, apperrors.NotFound(msgNotFound)
	}
	metrics.Reactions.WithLabelValues(e.Symbol()).Inc()
	s.mutated(ctx, "react", id)
	return updated, nil
}

func (s *service) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *service) reactAllowed(who access.Identity, rec *shayari.Shayari) error {
	if access.Decide(who, access.React, access.VisibilityOf(rec.IsPublic)) == access.Deny {
		metrics.AccessDenied.WithLabelValues(access.React.String()).Inc()
		return apperrors.Unauthorized(msgPrivateReact)
	}
	return nil
}

func (s *service) authorize(who access.Identity, op access.Operation, vis access.Visibility) error {
	if access.Decide(who, op, vis) == access.Allow {
		return nil
	}
	metrics.AccessDenied.WithLabelValues(op.String()).Inc()
	return access.DenialError(who)
}

func (s *service) load(ctx context.Context, id string) (*shayari.Shayari, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storageErr(err)
	}
	return rec, nil
}

func (s *service) storageErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(msgNotFound)
	}
	return s.internal(detailStorage, err)
}

func (s *service) internal(detail string, cause error) error {
	logger.L().Error("shayari operation failed", zap.String("detail", detail), zap.Error(cause))
	return apperrors.Internal(detail, cause)
}

func (s *service) mutated(ctx context.Context, op, id string) {
	metrics.Mutations.WithLabelValues(op).Inc()
	logger.L().Debug("shayari mutated", zap.String("op", op), zap.String("id", id))
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePublic(ctx); err != nil {
		logger.L().Warn("public listing cache invalidation failed", zap.Error(err))
	}
}
