package app

import (
	"context"
	"math"
	"sort"
	"time"

	"itemtrace-registry-service/internal/config"
	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/ports/inbound"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	recentWindow     = 30 * 24 * time.Hour
	topCategoryLimit = 5
	recentItemLimit  = 5
)

// AnalyticsService computes the per-user item summary. The independent
// count queries of one summary fan out over a shared worker pool.
type AnalyticsService struct {
	itemRepo outbound.ItemRepository
	pool     *pond.WorkerPool
	logger   zerolog.Logger
}
type AnalyticsServiceParams struct {
	ItemRepo outbound.ItemRepository
	Logger   zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(params AnalyticsServiceParams) *AnalyticsService {
	pool := pond.New(
		config.AnalyticsMaxWorkers,
		config.AnalyticsMaxCapacity,
		pond.Strategy(pond.Balanced()),
	)

	return &AnalyticsService{
		itemRepo: params.ItemRepo,
		pool:     pool,
		logger:   params.Logger.With().Str("component", "analytics_service").Logger(),
	}
}

// Close stops the worker pool, draining queued tasks
func (service *AnalyticsService) Close() {
	service.pool.StopAndWait()
}

// Summarize computes the analytics summary for a user's items
func (service *AnalyticsService) Summarize(ctx context.Context, userID uuid.UUID) (*inbound.AnalyticsSummary, error) {
	service.logger.Info().Str("user_id", userID.String()).Msg("Computing item analytics")

	// One boundary per call
	since := time.Now().UTC().Add(-recentWindow)

	safeStatus := item.StatusSafe
	stolenStatus := item.StatusStolen
	unknownStatus := item.StatusUnknown

	var (
		total, safe, stolen, unknown int
		addedLast30d, stolenLast30d  int
		lastUpdatedAt                *time.Time
		categories                   []string
		recentItems                  []*item.Item
	)

	group, groupCtx := service.pool.GroupContext(ctx)

	countInto := func(dst *int, filter outbound.ItemFilter) {
		group.Submit(func() error {
			n, err := service.itemRepo.Count(groupCtx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	countInto(&total, outbound.ItemFilter{UserID: &userID})
	countInto(&safe, outbound.ItemFilter{UserID: &userID, Status: &safeStatus})
	countInto(&stolen, outbound.ItemFilter{UserID: &userID, Status: &stolenStatus})
	countInto(&unknown, outbound.ItemFilter{UserID: &userID, Status: &unknownStatus})
	countInto(&addedLast30d, outbound.ItemFilter{UserID: &userID, CreatedSince: &since})
	countInto(&stolenLast30d, outbound.ItemFilter{UserID: &userID, Status: &stolenStatus, CreatedSince: &since})

	group.Submit(func() error {
		updatedAt, err := service.itemRepo.LatestUpdatedAt(groupCtx, userID)
		if err != nil {
			return err
		}
		lastUpdatedAt = updatedAt
		return nil
	})

	group.Submit(func() error {
		values, err := service.itemRepo.CategoriesByUser(groupCtx, userID)
		if err != nil {
			return err
		}
		categories = values
		return nil
	})

	group.Submit(func() error {
		items, err := service.itemRepo.List(groupCtx, outbound.ItemFilter{UserID: &userID}, recentItemLimit, 0)
		if err != nil {
			return err
		}
		recentItems = items
		return nil
	})

	if err := group.Wait(); err != nil {
		service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to compute analytics")
		return nil, err
	}

	summaries := make([]item.Summary, 0, len(recentItems))
	for _, it := range recentItems {
		summaries = append(summaries, it.Summarize())
	}

	return &inbound.AnalyticsSummary{
		Totals: inbound.StatusTotals{
			Total:   total,
			Safe:    safe,
			Stolen:  stolen,
			Unknown: unknown,
		},
		Ratios: inbound.StatusRatios{
			Safe:    percentage(safe, total),
			Stolen:  percentage(stolen, total),
			Unknown: percentage(unknown, total),
		},
		LastUpdatedAt: lastUpdatedAt,
		Recent: inbound.RecentActivity{
			AddedLast30d:  addedLast30d,
			StolenLast30d: stolenLast30d,
		},
		TopCategories: topCategories(categories),
		RecentItems:   summaries,
	}, nil
}

// percentage returns n/total as a percentage rounded to two decimals,
// 0.0 when total is zero
func percentage(n, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(n)/float64(total)*100*100) / 100
}

// topCategories counts occurrences and keeps the most frequent five,
// ties keep first-seen order
func topCategories(categories []string) []inbound.CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, category := range categories {
		if category == "" {
			continue
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	ranking := make([]inbound.CategoryCount, 0, len(order))
	for _, category := range order {
		ranking = append(ranking, inbound.CategoryCount{Category: category, Count: counts[category]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	if len(ranking) > topCategoryLimit {
		ranking = ranking[:topCategoryLimit]
	}

	return ranking
}
