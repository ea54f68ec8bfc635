package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"homologation-service/internal/models"
	"homologation-service/internal/resolution"

	"github.com/redis/go-redis/v9"
)

// ErrNothingResolved means the free text produced no catalog elements to
// quote. A soft outcome: the caller asks the customer to rephrase.
var ErrNothingResolved = errors.New("no catalog elements resolved from request")

// QuoteService orchestrates one quotation turn: snapshot, free-text
// resolution, tier selection and warning aggregation. One snapshot reference
// is taken per call and threaded through every step, so an admin edit landing
// mid-request can never tear the view.
type QuoteService struct {
	catalogService *CatalogService
	redisClient    *redis.Client
	expansions     *resolution.ExpansionCache
	quoteTTL       time.Duration
}

func NewQuoteService(catalogService *CatalogService, redisClient *redis.Client, expansionTTL, quoteTTL time.Duration) *QuoteService {
	return &QuoteService{
		catalogService: catalogService,
		redisClient:    redisClient,
		expansions:     resolution.NewExpansionCache(expansionTTL),
		quoteTTL:       quoteTTL,
	}
}

// ExpansionCache exposes the shared expansion cache for the sweep worker.
func (s *QuoteService) ExpansionCache() *resolution.ExpansionCache {
	return s.expansions
}

// Resolve maps free text onto the category's element catalog.
func (s *QuoteService) Resolve(ctx context.Context, category, text string) (*resolution.Resolution, error) {
	snap, err := s.catalogService.Snapshot(ctx, category)
	if err != nil {
		return nil, err
	}
	res := resolution.Resolve(snap, text)
	return &res, nil
}

// SelectVariant answers a pending variant question. Idempotent; it never
// re-runs free-text resolution.
func (s *QuoteService) SelectVariant(ctx context.Context, category, baseCode, answer string) (string, error) {
	snap, err := s.catalogService.Snapshot(ctx, category)
	if err != nil {
		return "", err
	}
	return resolution.SelectVariant(snap, baseCode, answer)
}

// Quote runs a full quotation. Free text (when present) is resolved first;
// explicitly requested elements are merged on top. Pending variant questions
// block the quote and are returned for the caller to settle via
// SelectVariant. The final price always travels with its warnings.
func (s *QuoteService) Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResponse, error) {
	snap, err := s.catalogService.Snapshot(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	request := map[string]int{}
	var orderedCodes []string
	var unmatched []string

	if req.Text != "" {
		res := resolution.Resolve(snap, req.Text)
		if len(res.VariantsPending) > 0 {
			return &models.QuoteResponse{
				Status:          models.QuoteStatusVariantsPending,
				VariantsPending: res.VariantsPending,
				Unmatched:       res.Unmatched,
			}, nil
		}
		for _, el := range res.Resolved {
			request[el.Code] = el.Quantity
			orderedCodes = append(orderedCodes, el.Code)
		}
		unmatched = res.Unmatched
	}

	explicit := make([]string, 0, len(req.Elements))
	for code := range req.Elements {
		explicit = append(explicit, code)
	}
	sort.Strings(explicit)
	for _, code := range explicit {
		if _, ok := request[code]; !ok {
			orderedCodes = append(orderedCodes, code)
		}
		request[code] = req.Elements[code]
	}

	if len(request) == 0 {
		return nil, ErrNothingResolved
	}

	details, err := s.quoteFromRequest(ctx, snap, request, orderedCodes)
	if err != nil {
		var cycle *resolution.CycleError
		if errors.As(err, &cycle) {
			slog.Error("tier reference cycle in catalog, selection aborted",
				"category", cycle.Category, "path", cycle.Path)
		}
		return nil, err
	}

	return &models.QuoteResponse{
		Status:    models.QuoteStatusQuoted,
		Quote:     details,
		Unmatched: unmatched,
	}, nil
}

func (s *QuoteService) quoteFromRequest(ctx context.Context, snap *resolution.Snapshot, request map[string]int, orderedCodes []string) (*models.QuoteDetails, error) {
	cacheKey := fmt.Sprintf("homologation:quote:%s:v%d:%s", snap.Category, snap.Version, resolution.RequestKey(request))
	if cached := s.cachedQuote(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	selection, err := resolution.SelectCached(snap, request, s.expansions)
	if err != nil {
		return nil, err
	}

	elements := make([]resolution.ResolvedElement, 0, len(orderedCodes))
	for _, code := range orderedCodes {
		elements = append(elements, resolution.ResolvedElement{Code: code, Quantity: request[code]})
	}

	details := &models.QuoteDetails{
		TierCode:       selection.TierCode,
		TierName:       selection.TierName,
		Price:          selection.Price,
		CatalogVersion: selection.Version,
		Elements:       elements,
		Warnings:       resolution.AggregateWarnings(snap, selection.TierCode, orderedCodes),
	}
	s.storeQuote(ctx, cacheKey, details)
	return details, nil
}

func (s *QuoteService) cachedQuote(ctx context.Context, key string) *models.QuoteDetails {
	if s.redisClient == nil {
		return nil
	}
	data, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("quote cache read failed", "key", key, "error", err)
		}
		return nil
	}
	var details models.QuoteDetails
	if err := json.Unmarshal(data, &details); err != nil {
		slog.Warn("quote cache entry corrupt, ignoring", "key", key, "error", err)
		return nil
	}
	return &details
}

func (s *QuoteService) storeQuote(ctx context.Context, key string, details *models.QuoteDetails) {
	if s.redisClient == nil {
		return
	}
	data, err := json.Marshal(details)
	if err != nil {
		slog.Warn("failed to marshal quote for cache", "key", key, "error", err)
		return
	}
	if err := s.redisClient.Set(ctx, key, data, s.quoteTTL).Err(); err != nil {
		slog.Warn("quote cache write failed", "key", key, "error", err)
	}
}
