package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// EpisodeRecord is the stored outcome of one headless simulation episode.
type EpisodeRecord struct {
	ID          int64
	Seed        int64
	Pilot       string
	Level       float64
	Landers     int
	Landed      int
	Crashed     int
	OutOfBounds int
	OutOfFuel   int
	Steps       int
	BestReward  float64
	MeanReward  float64
	CreatedAt   time.Time
}

// PilotStats aggregates the episodes flown by one pilot.
type PilotStats struct {
	Pilot      string
	Episodes   int
	Landers    int
	Landed     int
	BestReward float64
	MeanReward float64 // mean of per-episode mean rewards
	LastFlown  time.Time
}

// LandingRate returns landed landers as a fraction of all landers flown.
func (p PilotStats) LandingRate() float64 {
	if p.Landers == 0 {
		return 0
	}
	return float64(p.Landed) / float64(p.Landers)
}

// SaveEpisode records an episode. Returns the ID of the inserted record.
func (s *Store) SaveEpisode(e EpisodeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (seed, pilot, level, landers, landed, crashed, out_of_bounds, out_of_fuel, steps, best_reward, mean_reward)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Seed, e.Pilot, e.Level, e.Landers, e.Landed, e.Crashed, e.OutOfBounds, e.OutOfFuel,
		e.Steps, e.BestReward, e.MeanReward,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentEpisodes returns the most recently saved episodes, newest first.
// An empty pilot matches every pilot.
func (s *Store) RecentEpisodes(pilot string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, pilot, level, landers, landed, crashed, out_of_bounds, out_of_fuel,
		        steps, best_reward, mean_reward, created_at
		 FROM episodes
		 WHERE ? = '' OR pilot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		pilot, pilot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var records []EpisodeRecord
	for rows.Next() {
		var e EpisodeRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Pilot, &e.Level, &e.Landers, &e.Landed, &e.Crashed,
			&e.OutOfBounds, &e.OutOfFuel, &e.Steps, &e.BestReward, &e.MeanReward, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		records = append(records, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// GetPilotStats aggregates every episode flown by pilot. A pilot with no
// episodes yields zero stats.
func (s *Store) GetPilotStats(pilot string) (*PilotStats, error) {
	stats := &PilotStats{Pilot: pilot}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(landers), 0), COALESCE(SUM(landed), 0),
		        COALESCE(MAX(best_reward), 0), COALESCE(AVG(mean_reward), 0)
		 FROM episodes WHERE pilot = ?`,
		pilot,
	).Scan(&stats.Episodes, &stats.Landers, &stats.Landed, &stats.BestReward, &stats.MeanReward)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pilot stats: %w", err)
	}

	var lastFlown any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE pilot = ? ORDER BY id DESC LIMIT 1`,
		pilot,
	).Scan(&lastFlown)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last episode: %w", err)
	}
	if err == nil {
		stats.LastFlown = parseTime(lastFlown)
	}

	return stats, nil
}

// EpisodePilots returns every pilot with stored episodes, sorted by name.
func (s *Store) EpisodePilots() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT pilot FROM episodes ORDER BY pilot`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pilots: %w", err)
	}
	defer rows.Close()

	var pilots []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		pilots = append(pilots, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return pilots, nil
}
