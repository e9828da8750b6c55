package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"spawnscraper/internal"
	"spawnscraper/internal/catalog"
	"spawnscraper/internal/util"
)

var (
	ErrLookupMiss  = errors.New("no lookup entry for name")
	ErrDuplicateID = errors.New("item id resolved more than once")
)

type Association struct {
	ID        int
	Locations []internal.SpawnLocation
}

type Resolver struct {
	index  *catalog.Index
	logger *slog.Logger
}

func NewResolver(index *catalog.Index, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{index: index, logger: logger}
}

// Resolve maps a normalized token to one association per comma separated
// sub-token. Every association shares the same locations slice.
func (r *Resolver) Resolve(token string, locations []internal.SpawnLocation) ([]Association, error) {
	ids, err := r.ResolveIDs(token)
	if err != nil {
		return nil, err
	}
	out := make([]Association, 0, len(ids))
	for _, id := range ids {
		out = append(out, Association{ID: id, Locations: locations})
	}
	return out, nil
}

func (r *Resolver) ResolveIDs(token string) ([]int, error) {
	subs := util.SplitTokens(token)
	ids := make([]int, 0, len(subs))
	for _, sub := range subs {
		r.logger.Info("converting", "name", sub)
		if id, err := util.ParseInt(sub); err == nil {
			ids = append(ids, id)
			continue
		}
		id, err := r.lookupName(sub)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// lookupName prefers entries not flagged as duplicates and then the lowest id.
// Any name with more than one entry is logged so the override table can be
// corrected.
func (r *Resolver) lookupName(name string) (int, error) {
	candidates := r.index.Candidates(name)
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrLookupMiss, name)
	}

	pool := make([]internal.LookupEntry, 0, len(candidates))
	for _, c := range candidates {
		if !c.Duplicate {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}
	chosen := pool[0].ID

	if len(candidates) > 1 {
		ids := make([]int, 0, len(candidates))
		dups := make([]bool, 0, len(candidates))
		for _, c := range candidates {
			ids = append(ids, c.ID)
			dups = append(dups, c.Duplicate)
		}
		r.logger.Warn("ambiguous lookup name", "name", name, "candidates", ids, "duplicate", dups, "chosen", chosen)
	}
	return chosen, nil
}
