package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog/log"

	"studiodesk/infras/otel"
	"studiodesk/internal/domains/identifier/model"
	"studiodesk/internal/domains/identifier/repository"
	"studiodesk/shared/constant"
	gRepo "studiodesk/shared/repository"
)

var ErrExhausted = errors.New("no free identifier found")

// Allocator hands out identifiers from the space shared by clients,
// bookings, invoices and invoice items.
type Allocator interface {
	Generate(ctx context.Context) (string, error)
}

type serviceImpl struct {
	repo    repository.Identifier
	otel    otel.Otel
	entropy io.Reader
}

func New(repo repository.Identifier, otel otel.Otel) Allocator {
	return NewWithEntropy(repo, otel, rand.Reader)
}

func NewWithEntropy(repo repository.Identifier, otel otel.Otel, entropy io.Reader) Allocator {
	return &serviceImpl{
		repo:    repo,
		otel:    otel,
		entropy: entropy,
	}
}

func (s *serviceImpl) Generate(ctx context.Context) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identifier.Generate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	for range model.MaxSamples {
		candidate, err := Sample(s.entropy)
		if err != nil {
			log.Error().Err(err).Msg("failed to sample identifier")

			return constant.Empty, fmt.Errorf("failed to sample identifier: %w", err)
		}

		taken, err := s.repo.Exists(ctx, candidate)
		if err != nil {
			log.Error().Err(err).Msg("failed to check identifier")

			return constant.Empty, fmt.Errorf("failed to check identifier: %w", err)
		}

		if !taken {
			return candidate, nil
		}
	}

	log.Error().Int("samples", model.MaxSamples).Msg("identifier space looks saturated")

	return constant.Empty, ErrExhausted
}

// Sample draws one candidate uniformly from the alphabet.
func Sample(entropy io.Reader) (string, error) {
	alphabetSize := big.NewInt(int64(len(model.Alphabet)))
	buf := make([]byte, model.Length)

	for i := range buf {
		idx, err := rand.Int(entropy, alphabetSize)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to read entropy: %w", err)
		}

		buf[i] = model.Alphabet[idx.Int64()]
	}

	return string(buf), nil
}

// WithID allocates an identifier and passes it to insert. The existence check
// is not atomic with the insert, so a primary key violation means another
// request took the same id first: a fresh id is allocated and insert runs
// again, up to model.MaxInsertAttempts times.
func WithID(ctx context.Context, allocator Allocator, insert func(id string) error) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= model.MaxInsertAttempts; attempt++ {
		id, err := allocator.Generate(ctx)
		if err != nil {
			return constant.Empty, err
		}

		lastErr = insert(id)
		if lastErr == nil {
			return id, nil
		}

		if !gRepo.IsPrimaryKeyViolation(lastErr) {
			return constant.Empty, lastErr
		}

		log.Warn().Str("id", id).Int("attempt", attempt).Msg("identifier collided on insert, re-allocating")
	}

	return constant.Empty, fmt.Errorf("failed to insert after %d identifier collisions: %w", model.MaxInsertAttempts, lastErr)
}
