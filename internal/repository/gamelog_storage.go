package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// ClickHouseStorage implements Storage and SlateStore for ClickHouse.
type ClickHouseStorage struct {
	db         *sql.DB
	table      string
	slateTable string
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB, table, slateTable string) *ClickHouseStorage {
	return &ClickHouseStorage{db: db, table: table, slateTable: slateTable}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseStorage) Store(ctx context.Context, ev *models.GameEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (game_date, sport, game_id, player_id, stat, opponent, team, is_home, is_back_to_back, rest_days, opp_def_rank, value, event_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	// Idempotency key: one row per (player, stat, game)
	eventID := fmt.Sprintf("%s-%s-%s", ev.GameID, ev.PlayerID, ev.Stat)
	_, err := s.db.ExecContext(ctx, q,
		ev.Date,
		ev.Sport,
		ev.GameID,
		ev.PlayerID,
		ev.Stat,
		ev.Opponent,
		ev.Team,
		boolToUint8(ev.IsHome),
		boolToUint8(ev.IsBackToBack),
		ev.RestDays,
		ev.OpponentDefenseRank,
		ev.Value,
		eventID,
	)
	return err
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, evs []*models.GameEvent) error {
	if len(evs) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	// Chunk size tuned to 2000 rows per batch.
	const chunkSize = 2000
	for start := 0; start < len(evs); start += chunkSize {
		end := start + chunkSize
		if end > len(evs) {
			end = len(evs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*13)
		for _, ev := range evs[start:end] {
			if ev == nil || ev.PlayerID == "" || ev.Stat == "" {
				continue
			}
			eventID := fmt.Sprintf("%s-%s-%s", ev.GameID, ev.PlayerID, ev.Stat)
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				ev.Date,
				ev.Sport,
				ev.GameID,
				ev.PlayerID,
				ev.Stat,
				ev.Opponent,
				ev.Team,
				boolToUint8(ev.IsHome),
				boolToUint8(ev.IsBackToBack),
				ev.RestDays,
				ev.OpponentDefenseRank,
				ev.Value,
				eventID,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (game_date, sport, game_id, player_id, stat, opponent, team, is_home, is_back_to_back, rest_days, opp_def_rank, value, event_id) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceSlate swaps out the stored slate for one sport and date. Old rows
// for the same slate are dropped first so re-pulls do not duplicate props.
func (s *ClickHouseStorage) ReplaceSlate(ctx context.Context, sport string, date time.Time, props []models.PropDescriptor) error {
	del := fmt.Sprintf("ALTER TABLE %s DELETE WHERE sport = ? AND slate_date = ?", s.slateTable)
	if _, err := s.db.ExecContext(ctx, del, sport, date); err != nil {
		return fmt.Errorf("clear slate: %w", err)
	}
	if len(props) == 0 {
		return nil
	}

	values := make([]string, 0, len(props))
	args := make([]interface{}, 0, len(props)*7)
	for _, p := range props {
		if p.PlayerID == "" || p.Stat == "" {
			continue
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, date, sport, p.PlayerID, p.Stat, p.Line, p.Team, string(p.Direction))
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s (slate_date, sport, player_id, stat, line, team, direction) VALUES %s",
		s.slateTable, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert slate: %w", err)
	}
	return nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
