package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/repository"
	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

// canonicalUUIDLen is the length of the hyphenated form. uuid.Validate also
// accepts braced, urn and unhyphenated forms, which are not product ids.
const canonicalUUIDLen = 36

// commonProductNames are tried as substrings of the key when every more
// specific strategy has failed.
var commonProductNames = []string{
	"almonds", "cashews", "pistachios", "walnuts", "raisins", "dates", "figs",
	"apricots", "saffron", "turmeric", "cardamom", "cinnamon", "cloves",
	"pepper", "cumin", "chilli",
}

// minWordLength is the shortest token the word strategy searches for.
const minWordLength = 4

// Strategy looks a product up from a URL key. It returns nil, nil when it
// finds no match so the next strategy can run.
type Strategy struct {
	Name string
	Find func(ctx context.Context, key string) (*domain.Product, error)
}

// Resolver maps a product URL key (id, slug or name-like text) to a product
// by running an ordered list of strategies.
type Resolver struct {
	repo       repository.ProductRepository
	strategies []Strategy
	logger     *slog.Logger
}

// NewResolver creates a resolver. With anyFallback set an unmatched key
// resolves to an arbitrary product instead of failing.
func NewResolver(repo repository.ProductRepository, anyFallback bool, logger *slog.Logger) *Resolver {
	r := &Resolver{repo: repo, logger: logger}
	r.strategies = []Strategy{
		{Name: "id", Find: r.byID},
		{Name: "slug", Find: r.bySlug},
		{Name: "exact_name", Find: r.byExactName},
		{Name: "partial_name", Find: r.byPartialName},
		{Name: "words", Find: r.byWords},
		{Name: "common_name", Find: r.byCommonName},
	}
	if anyFallback {
		r.strategies = append(r.strategies, Strategy{Name: "any", Find: r.anyProduct})
	}
	return r
}

// Strategies returns the strategy names in the order they run.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name
	}
	return names
}

// Resolve runs the strategies in order and returns the first match. A
// strategy error stops the chain. An unmatched key yields a NotFound error.
func (r *Resolver) Resolve(ctx context.Context, key string) (*domain.Product, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.InvalidInput("product key is required")
	}

	for _, s := range r.strategies {
		p, err := s.Find(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("resolve product %q by %s: %w", key, s.Name, err)
		}
		if p != nil {
			r.logger.DebugContext(ctx, "product resolved",
				slog.String("key", key),
				slog.String("strategy", s.Name),
				slog.String("product_id", p.ID),
			)
			return p, nil
		}
	}

	return nil, apperrors.NotFound("product", key)
}

// candidate is the key with hyphens read as spaces.
func candidate(key string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(key, "-", " ")), " ")
}

// found turns the repository's not-found error into a strategy miss.
func found(p *domain.Product, err error) (*domain.Product, error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *Resolver) byID(ctx context.Context, key string) (*domain.Product, error) {
	if len(key) != canonicalUUIDLen || uuid.Validate(key) != nil {
		return nil, nil
	}
	return found(r.repo.GetByID(ctx, strings.ToLower(key)))
}

func (r *Resolver) bySlug(ctx context.Context, key string) (*domain.Product, error) {
	return found(r.repo.GetBySlug(ctx, key))
}

func (r *Resolver) byExactName(ctx context.Context, key string) (*domain.Product, error) {
	return found(r.repo.FindByName(ctx, candidate(key)))
}

func (r *Resolver) byPartialName(ctx context.Context, key string) (*domain.Product, error) {
	return found(r.repo.FindByNameContaining(ctx, candidate(key)))
}

func (r *Resolver) byWords(ctx context.Context, key string) (*domain.Product, error) {
	for _, word := range strings.Fields(candidate(key)) {
		if len(word) < minWordLength {
			continue
		}
		p, err := found(r.repo.FindByNameContaining(ctx, word))
		if err != nil || p != nil {
			return p, err
		}
	}
	return nil, nil
}

func (r *Resolver) byCommonName(ctx context.Context, key string) (*domain.Product, error) {
	lower := strings.ToLower(candidate(key))
	for _, name := range commonProductNames {
		if !strings.Contains(lower, name) {
			continue
		}
		p, err := found(r.repo.FindByNameContaining(ctx, name))
		if err != nil || p != nil {
			return p, err
		}
	}
	return nil, nil
}

func (r *Resolver) anyProduct(ctx context.Context, _ string) (*domain.Product, error) {
	return found(r.repo.First(ctx))
}
