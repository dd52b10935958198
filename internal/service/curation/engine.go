package curation

import (
	"context"
	"math/rand/v2"
	"time"

	"vendora/internal/domain"
	"vendora/internal/metrics"
)

// Default caps for the cross-vendor marketplace feed.
const (
	DefaultPerStoreCap = 10
	DefaultTotalCap    = 60
)

// Engine selects a bounded, fair product sample across vendors. The
// same primitive serves the marketplace feed, the landing sample and
// the single-store page; only the caps differ.
type Engine struct {
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

func NewEngine() *Engine {
	return &Engine{now: time.Now, shuffle: rand.Shuffle}
}

// Curate filters candidates (pre-sorted newest-first) in a single
// forward pass and shuffles the admitted set. Dropped per product:
// expired owning store, free-plan owner, banned owner. A store may
// place at most perStoreCap products; the output holds at most
// totalCap. A cap <= 0 means unbounded on that axis.
//
// The shuffle is re-applied per call and never persisted, so ordering
// is intentionally unstable across reloads; it keeps repeat visits
// from always seeing the same store first.
func (e *Engine) Curate(candidates []domain.MarketplaceProduct, perStoreCap, totalCap int) []domain.MarketplaceProduct {
	now := e.now()
	perStore := make(map[string]int)
	admitted := make([]domain.MarketplaceProduct, 0, len(candidates))

	for _, p := range candidates {
		if totalCap > 0 && len(admitted) >= totalCap {
			break
		}
		if p.ExpiredStore(now) {
			continue
		}
		if p.StorePlan == domain.PlanFree {
			continue
		}
		if p.StoreStatus == domain.StoreStatusBanned {
			continue
		}
		if perStoreCap > 0 && perStore[p.StoreID] >= perStoreCap {
			continue
		}
		perStore[p.StoreID]++
		admitted = append(admitted, p)
	}

	e.shuffle(len(admitted), func(i, j int) {
		admitted[i], admitted[j] = admitted[j], admitted[i]
	})
	return admitted
}

// Service runs the engine over the raw candidate pool from the store
// of record.
type Service struct {
	engine  *Engine
	repo    candidateRepo
	metrics *metrics.Metrics

	perStoreCap int
	totalCap    int
	landingCap  int
}

type candidateRepo interface {
	ListMarketplaceCandidates(ctx context.Context, limit int) ([]domain.MarketplaceProduct, error)
}

func New(repo candidateRepo, m *metrics.Metrics, perStoreCap, totalCap, landingCap int) *Service {
	if perStoreCap <= 0 {
		perStoreCap = DefaultPerStoreCap
	}
	if totalCap <= 0 {
		totalCap = DefaultTotalCap
	}
	return &Service{
		engine:      NewEngine(),
		repo:        repo,
		metrics:     m,
		perStoreCap: perStoreCap,
		totalCap:    totalCap,
		landingCap:  landingCap,
	}
}

// Marketplace curates the public cross-vendor feed. Caller-supplied
// caps are clamped to the configured maxima; zero values fall back to
// the configured defaults.
func (s *Service) Marketplace(ctx context.Context, perStoreCap, totalCap int) ([]domain.MarketplaceProduct, error) {
	if perStoreCap <= 0 || perStoreCap > s.perStoreCap {
		perStoreCap = s.perStoreCap
	}
	if totalCap <= 0 || totalCap > s.totalCap {
		totalCap = s.totalCap
	}

	// Fetch enough raw candidates to fill the feed even when every
	// early candidate belongs to one prolific store.
	candidates, err := s.repo.ListMarketplaceCandidates(ctx, totalCap*4)
	if err != nil {
		return nil, err
	}
	curated := s.engine.Curate(candidates, perStoreCap, totalCap)
	if s.metrics != nil {
		s.metrics.CurationRequests.Inc()
		s.metrics.CurationProductsServed.Add(float64(len(curated)))
	}
	return curated, nil
}

// LandingSample is the small shuffled sample for the landing page:
// no per-store cap, a short total cap.
func (s *Service) LandingSample(ctx context.Context) ([]domain.MarketplaceProduct, error) {
	limit := s.landingCap
	if limit <= 0 {
		limit = 12
	}
	candidates, err := s.repo.ListMarketplaceCandidates(ctx, limit*4)
	if err != nil {
		return nil, err
	}
	curated := s.engine.Curate(candidates, 0, limit)
	if s.metrics != nil {
		s.metrics.CurationRequests.Inc()
		s.metrics.CurationProductsServed.Add(float64(len(curated)))
	}
	return curated, nil
}
