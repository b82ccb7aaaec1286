package service

import (
	"context"
	"strings"

	"github.com/fortuna/augur/internal/fetch/nbastats"
)

const playerIndexKey = "players:index"

func (s *AnalysisService) playerIndex(ctx context.Context) ([]nbastats.PlayerIndexEntry, error) {
	var index []nbastats.PlayerIndexEntry
	err := s.cached(ctx, playerIndexKey, s.cfg.PlayerIndexTTL, &index, func() (interface{}, error) {
		entries, err := s.stats.PlayerIndex(ctx, s.cfg.CurrentSeason)
		if err != nil {
			return nil, err
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// ResolvePlayer finds a player by exact full-name equality, case-insensitive.
// Identity resolution never uses substring matching.
func (s *AnalysisService) ResolvePlayer(ctx context.Context, name string) (*nbastats.PlayerIndexEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNotFound
	}

	index, err := s.playerIndex(ctx)
	if err != nil {
		return nil, ErrDataUnavailable
	}

	for i := range index {
		if strings.EqualFold(index[i].FullName, name) {
			return &index[i], nil
		}
	}
	return nil, ErrPlayerNotFound
}

// SearchPlayers returns index entries whose names contain the query,
// case-insensitive. Used by the search endpoint, never for identity.
func (s *AnalysisService) SearchPlayers(ctx context.Context, query string, limit int) ([]nbastats.PlayerIndexEntry, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	index, err := s.playerIndex(ctx)
	if err != nil {
		return nil, ErrDataUnavailable
	}

	var matches []nbastats.PlayerIndexEntry
	for _, entry := range index {
		if strings.Contains(strings.ToLower(entry.FullName), query) {
			matches = append(matches, entry)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}
