package projections

import (
	"context"
	"sort"
	"strings"

	"coachdash/internal/application/listutil"
	"coachdash/internal/domain/player"
)

// ListPlayersQuery carries roster list parameters. Params is parsed by
// the caller with listutil.ParseListParams.
type ListPlayersQuery struct {
	Params listutil.ListParams
}

// ListPlayersDeps holds dependencies for ListPlayers.
type ListPlayersDeps struct {
	PlayerStore PlayerStore
}

// ListPlayersResult holds one page of the roster plus page metadata.
type ListPlayersResult struct {
	Players  []player.Player
	PageInfo listutil.PageInfo
}

// PlayerSortColumns are the sort columns the roster list accepts.
var PlayerSortColumns = []string{"last_name", "first_name", "created_at"}

// PlayerFilterKeys are the exact-match filters the roster list accepts.
var PlayerFilterKeys = []string{"position"}

// QueryListPlayers returns one page of the roster, filtered and sorted.
// Rosters are small enough to filter in memory over the full list. Pure
// read: restartable, no side effects.
// PRE: query.Params has been parsed via listutil
// POST: Returns the requested page ordered by the sort column
// (last_name asc by default), with PageInfo reflecting the filtered total
func QueryListPlayers(ctx context.Context, query ListPlayersQuery, deps ListPlayersDeps) (ListPlayersResult, error) {
	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return ListPlayersResult{}, err
	}

	params := query.Params
	filtered := players[:0:0]
	for _, p := range players {
		if !matchesPlayerFilters(p, params.FilterParams) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortPlayers(filtered, params.SortParams)

	info := listutil.NewPageInfo(params.Page, params.PerPage, len(filtered))
	start := info.Offset()
	end := start + info.PerPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return ListPlayersResult{Players: filtered[start:end], PageInfo: info}, nil
}

func matchesPlayerFilters(p player.Player, f listutil.FilterParams) bool {
	if pos, ok := f.Filters["position"]; ok && !strings.EqualFold(p.Position, pos) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.DisplayName()), needle) {
			return false
		}
	}
	return true
}

func sortPlayers(players []player.Player, s listutil.SortParams) {
	less := func(a, b player.Player) bool {
		switch s.Sort {
		case "first_name":
			return a.FirstName < b.FirstName
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			return a.FirstName < b.FirstName
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		if s.Dir == "desc" {
			return less(players[j], players[i])
		}
		return less(players[i], players[j])
	})
}
