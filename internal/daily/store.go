package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished run at the daily root word.
type Result struct {
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	RootIndex  int    `json:"rootIndex"`
	Score      int    `json:"score"`
	WordsFound int    `json:"wordsFound"`
	ElapsedMs  int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the user has a persisted result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult persists a finished run. Respects UNIQUE(user_id, date):
// a second insert for the same day is ignored, not an error.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, root_index, score, words_found, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.RootIndex, r.Score, r.WordsFound, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID     string `json:"userId"`
	Score      int    `json:"score"`
	WordsFound int    `json:"wordsFound"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// Leaderboard returns the top results for a date: highest score first,
// ties broken by more words found, then earlier submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, words_found, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY score DESC, words_found DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.WordsFound, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
