package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"spawnscraper/internal"
	"spawnscraper/internal/catalog"
	"spawnscraper/internal/config"
	"spawnscraper/internal/dataset"
	"spawnscraper/internal/sources"
)

var ErrDuplicateName = errors.New("display name listed more than once")

type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// RunRecorder keeps a copy of each finished run. storage.DB implements it.
type RunRecorder interface {
	ReplaceSpawns(ds internal.IDDataset) error
	InsertRun(traceID string, counts internal.RunCounts, timings map[string]float64) error
	SetMetadata(key, value string) error
}

type Service struct {
	cfg        config.Config
	fetcher    Fetcher
	normalizer *Normalizer
	recorder   RunRecorder
	logger     *slog.Logger
}

func NewService(cfg config.Config, fetcher Fetcher, normalizer *Normalizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, fetcher: fetcher, normalizer: normalizer, logger: logger}
}

// WithRecorder enables run recording; nil disables it.
func (s *Service) WithRecorder(r RunRecorder) *Service {
	s.recorder = r
	return s
}

type RunResult struct {
	Counts  internal.RunCounts
	Dataset internal.IDDataset
	TraceID string
}

// Scrape fetches every source in order and extracts its spawn locations,
// keyed by the normalized display token.
func (s *Service) Scrape(ctx context.Context, records []internal.NameRecord) (internal.NameDataset, error) {
	out := internal.NameDataset{}
	for _, rec := range s.normalizer.NormalizeRecords(records) {
		if _, dup := out[rec.Token]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, rec.Token)
		}
		out[rec.Token] = []internal.SpawnLocation{}

		body, err := s.fetcher.Fetch(ctx, rec.SourceID)
		if err != nil {
			return nil, fmt.Errorf("fetch %q: %w", rec.DisplayName, err)
		}
		s.logger.Info("scraping", "name", rec.Token)

		locations, err := ExtractAll(body)
		if err != nil {
			return nil, fmt.Errorf("extract %q: %w", rec.Token, err)
		}
		out[rec.Token] = locations
	}
	return out, nil
}

// Convert resolves every token of names to item ids. Any failure discards the
// partial result.
func (s *Service) Convert(names internal.NameDataset, index *catalog.Index) (internal.IDDataset, error) {
	resolver := NewResolver(index, s.logger)

	tokens := make([]string, 0, len(names))
	for token := range names {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	out := internal.IDDataset{}
	for _, token := range tokens {
		assocs, err := resolver.Resolve(token, names[token])
		if err != nil {
			return nil, err
		}
		for _, a := range assocs {
			if _, dup := out[a.ID]; dup {
				return nil, fmt.Errorf("%w: id %d from %q", ErrDuplicateID, a.ID, token)
			}
			out[a.ID] = a.Locations
		}
	}
	return out, nil
}

// LoadOrScrape returns the cached name dataset when the cache file exists and
// otherwise scrapes every source and writes the cache. The cache is never
// checked for staleness.
func (s *Service) LoadOrScrape(ctx context.Context) (internal.NameDataset, int, bool, error) {
	cached, err := dataset.Exists(s.cfg.CachePath)
	if err != nil {
		return nil, 0, false, err
	}
	if cached {
		s.logger.Info("using cached scrape", "path", s.cfg.CachePath)
		names, err := dataset.ReadNames(s.cfg.CachePath)
		return names, 0, true, err
	}

	records, err := sources.LoadFile(s.cfg.SourcesPath)
	if err != nil {
		return nil, 0, false, err
	}
	names, err := s.Scrape(ctx, records)
	if err != nil {
		return nil, 0, false, err
	}
	if err := dataset.WriteNames(s.cfg.CachePath, names); err != nil {
		return nil, 0, false, err
	}
	return names, len(records), false, nil
}

// Run is the full pipeline. The output file is written only after every name
// resolved, so a failed run leaves an earlier output in place.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	start := time.Now()

	names, sourceCount, fromCache, err := s.LoadOrScrape(ctx)
	if err != nil {
		return RunResult{}, err
	}
	scraped := time.Now()

	index, err := catalog.LoadFile(s.cfg.LookupPath)
	if err != nil {
		return RunResult{}, err
	}
	ids, err := s.Convert(names, index)
	if err != nil {
		return RunResult{}, err
	}

	if err := dataset.WriteIDs(s.cfg.OutputPath, ids); err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Counts: internal.RunCounts{
			Sources:   sourceCount,
			Names:     len(names),
			Items:     len(ids),
			Locations: countLocations(ids),
			FromCache: fromCache,
		},
		Dataset: ids,
		TraceID: traceID(),
	}
	timings := map[string]float64{
		"scrapeMs": float64(scraped.Sub(start).Milliseconds()),
		"totalMs":  float64(time.Since(start).Milliseconds()),
	}
	s.logger.Info("run complete", "trace", result.TraceID, "names", result.Counts.Names, "items", result.Counts.Items, "locations", result.Counts.Locations, "cached", fromCache)

	if err := s.record(result, timings); err != nil {
		return result, err
	}
	return result, nil
}

func (s *Service) record(result RunResult, timings map[string]float64) error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.ReplaceSpawns(result.Dataset); err != nil {
		return fmt.Errorf("store spawns: %w", err)
	}
	if err := s.recorder.InsertRun(result.TraceID, result.Counts, timings); err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	sum, err := dataset.FileSHA256(s.cfg.CachePath)
	if err != nil {
		return fmt.Errorf("hash cache: %w", err)
	}
	if err := s.recorder.SetMetadata("cache.sha256", sum); err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}
	if err := s.recorder.SetMetadata("run.last", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}
	return nil
}

func countLocations(ds internal.IDDataset) int {
	n := 0
	for _, locs := range ds {
		n += len(locs)
	}
	return n
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
