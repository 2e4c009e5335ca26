package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	pkgch "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/clickhouse"
	applogger "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
)

// CHGameLogStore implements GameLogStore backed by ClickHouse.
type CHGameLogStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHGameLogStore(ch *pkgch.Client) *CHGameLogStore {
	return &CHGameLogStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHGameLogStore) SetLogger(l *applogger.Logger) { s.l = l }

// GetLatestObservations returns the player's last n game logs for a stat,
// newest first.
func (s *CHGameLogStore) GetLatestObservations(ctx context.Context, playerID, stat string, n int) ([]models.Observation, error) {
	start := time.Now()
	const q = `
        SELECT game_date, opponent, is_home, is_back_to_back, rest_days, opp_def_rank, value
        FROM heatcheck.game_logs
        WHERE player_id = ? AND stat = ?
        ORDER BY game_date DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, playerID, stat, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_observations query error",
				applogger.String("player_id", playerID),
				applogger.String("stat", stat),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest observations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Observation, 0, n)
	for rows.Next() {
		var o models.Observation
		var isHome, isB2B uint8
		if err := rows.Scan(&o.Date, &o.Opponent, &isHome, &isB2B, &o.RestDays, &o.OpponentDefenseRank, &o.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_observations scan error",
					applogger.String("player_id", playerID),
					applogger.String("stat", stat),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.IsHome = isHome != 0
		o.IsBackToBack = isB2B != 0
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_observations rows error",
				applogger.String("player_id", playerID),
				applogger.String("stat", stat),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_observations ok",
			applogger.String("player_id", playerID),
			applogger.String("stat", stat),
			applogger.Int("limit", n),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// GetSeasonAverage returns the player's season-to-date mean for a stat.
// Missing players yield 0 with no error; the caller treats that as no edge.
func (s *CHGameLogStore) GetSeasonAverage(ctx context.Context, playerID, stat string) (float64, error) {
	const q = `
        SELECT avg(value)
        FROM heatcheck.game_logs
        WHERE player_id = ? AND stat = ?
    `
	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, q, playerID, stat).Scan(&avg); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse season_average query error",
				applogger.String("player_id", playerID),
				applogger.String("stat", stat),
				applogger.Error(err),
			)
		}
		return 0, fmt.Errorf("get season average: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// ListSlateProps returns the posted prop legs for today's slate in a sport.
func (s *CHGameLogStore) ListSlateProps(ctx context.Context, sport string) ([]models.PropDescriptor, error) {
	start := time.Now()
	const q = `
        SELECT player_id, stat, line, team, direction
        FROM heatcheck.slate_props
        WHERE sport = ? AND slate_date = today()
        ORDER BY team, player_id, stat
    `
	rows, err := s.db.QueryContext(ctx, q, sport)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse slate_props query error",
				applogger.String("sport", sport),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("list slate props: %w", err)
	}
	defer rows.Close()

	out := make([]models.PropDescriptor, 0, 64)
	for rows.Next() {
		var p models.PropDescriptor
		var dir string
		if err := rows.Scan(&p.PlayerID, &p.Stat, &p.Line, &p.Team, &dir); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse slate_props scan error",
					applogger.String("sport", sport),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan slate prop: %w", err)
		}
		p.Direction = models.Direction(dir)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse slate_props ok",
			applogger.String("sport", sport),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
