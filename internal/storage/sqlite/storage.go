package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db     *sql.DB
	cfg    Config
	logger *slog.Logger
}

// New opens (creating if needed) the SQLite database at cfg.Path
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Storage{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func dsn(cfg Config) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = DefaultConfig().BusyTimeout
	}
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		cfg.Path, busy.Milliseconds())
}

// Close closes the database pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func isUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	if errors.As(err, &se) {
		// the driver enables extended result codes, so NOT NULL, CHECK and
		// trigger failures carry their own codes
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user (username, password) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrUsernameTaken
		}
		return nil, model.Persistence("insert user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, model.Persistence("insert user", err)
	}

	return &model.User{
		ID:           model.UserID(id),
		Username:     username,
		PasswordHash: passwordHash,
	}, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, points FROM user WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password, points FROM user WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Points); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, model.Persistence("get user", err)
	}
	return &u, nil
}

func (s *Storage) ListUsersByPoints(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, points FROM user ORDER BY points DESC, id ASC`)
	if err != nil {
		return nil, model.Persistence("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Points); err != nil {
			return nil, model.Persistence("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistence("list users", err)
	}
	return users, nil
}

// Post operations

const postColumns = `p.id, p.title, p.body, p.created, p.author_id, u.username`

func (s *Storage) CreatePost(ctx context.Context, post *model.Post) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO post (title, body, author_id, created) VALUES (?, ?, ?, ?)`,
		post.Title, post.Body, post.AuthorID, post.Created.UTC(),
	)
	if err != nil {
		return model.Persistence("insert post", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Persistence("insert post", err)
	}
	post.ID = model.PostID(id)
	return nil
}

func (s *Storage) GetPost(ctx context.Context, id model.PostID) (*model.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM post p JOIN user u ON p.author_id = u.id WHERE p.id = ?`, id)

	var p model.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID, &p.AuthorUsername); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, model.Persistence("get post", err)
	}
	return &p, nil
}

func (s *Storage) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM post p JOIN user u ON p.author_id = u.id ORDER BY p.created DESC, p.id DESC`)
	if err != nil {
		return nil, model.Persistence("list posts", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID, &p.AuthorUsername); err != nil {
			return nil, model.Persistence("scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistence("list posts", err)
	}
	return posts, nil
}

func (s *Storage) UpdatePost(ctx context.Context, id model.PostID, title, body string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE post SET title = ?, body = ? WHERE id = ?`, title, body, id)
	if err != nil {
		return model.Persistence("update post", err)
	}
	return requireAffected(res, model.ErrPostNotFound, "update post")
}

func (s *Storage) DeletePost(ctx context.Context, id model.PostID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return model.Persistence("delete post", err)
	}
	return requireAffected(res, model.ErrPostNotFound, "delete post")
}

func requireAffected(res sql.Result, notFound error, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return model.Persistence(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// Game operations

const gameColumns = `g.id, g.created, g.late_person, g.arrival_time, g.winner_id, COALESCE(u.username, ''), g.resolved_at`

func scanGame(scan func(dest ...any) error) (*model.Game, error) {
	var (
		g          model.Game
		winnerID   sql.NullInt64
		resolvedAt sql.NullTime
	)
	if err := scan(&g.ID, &g.Created, &g.LatePerson, &g.ArrivalTime, &winnerID, &g.WinnerUsername, &resolvedAt); err != nil {
		return nil, err
	}
	if winnerID.Valid {
		id := model.UserID(winnerID.Int64)
		g.WinnerID = &id
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		g.ResolvedAt = &t
	}
	return &g, nil
}

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO game (late_person, arrival_time, created) VALUES (?, ?, ?)`,
		game.LatePerson, game.ArrivalTime, game.Created.UTC(),
	)
	if err != nil {
		return model.Persistence("insert game", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Persistence("insert game", err)
	}
	game.ID = model.GameID(id)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return getGame(ctx, s.db, id)
}

func getGame(ctx context.Context, q dbtx, id model.GameID) (*model.Game, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM game g LEFT JOIN user u ON g.winner_id = u.id WHERE g.id = ?`, id)

	g, err := scanGame(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, model.Persistence("get game", err)
	}
	return g, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]model.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM game g LEFT JOIN user u ON g.winner_id = u.id ORDER BY g.created DESC, g.id DESC`)
	if err != nil {
		return nil, model.Persistence("list games", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, model.Persistence("scan game", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistence("list games", err)
	}
	return games, nil
}

// Guess operations

func (s *Storage) CreateGuess(ctx context.Context, guess *model.Guess) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO guess (game_id, player_id, guessed_time, created) VALUES (?, ?, ?, ?)`,
		guess.GameID, guess.PlayerID, guess.GuessedTime, guess.Created.UTC(),
	)
	if err != nil {
		return model.Persistence("insert guess", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Persistence("insert guess", err)
	}
	guess.ID = model.GuessID(id)
	return nil
}

func (s *Storage) ListGuesses(ctx context.Context, gameID model.GameID) ([]model.Guess, error) {
	return listGuesses(ctx, s.db, gameID)
}

func listGuesses(ctx context.Context, q dbtx, gameID model.GameID) ([]model.Guess, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT gs.id, gs.game_id, gs.player_id, u.username, gs.guessed_time, gs.created
		 FROM guess gs JOIN user u ON gs.player_id = u.id
		 WHERE gs.game_id = ?
		 ORDER BY gs.id ASC`, gameID)
	if err != nil {
		return nil, model.Persistence("list guesses", err)
	}
	defer rows.Close()

	var guesses []model.Guess
	for rows.Next() {
		var g model.Guess
		if err := rows.Scan(&g.ID, &g.GameID, &g.PlayerID, &g.PlayerUsername, &g.GuessedTime, &g.Created); err != nil {
			return nil, model.Persistence("scan guess", err)
		}
		guesses = append(guesses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Persistence("list guesses", err)
	}
	return guesses, nil
}

// Resolution

func (s *Storage) ResolveGame(ctx context.Context, id model.GameID, resolvedAt time.Time, points int, decide storage.Decider) (*model.Resolution, error) {
	result := &model.Resolution{At: resolvedAt}

	err := withTx(ctx, s.db, func(tx dbtx) error {
		game, err := getGame(ctx, tx, id)
		if err != nil {
			return err
		}
		result.Game = *game
		if game.IsResolved() {
			return model.ErrGameResolved
		}

		guesses, err := listGuesses(ctx, tx, id)
		if err != nil {
			return err
		}

		winner, distance := decide(guesses)
		if winner == nil {
			return nil
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE game SET winner_id = ?, resolved_at = ? WHERE id = ? AND winner_id IS NULL`,
			winner.PlayerID, resolvedAt.UTC(), id)
		if err != nil {
			return model.Persistence("set winner", err)
		}
		if err := requireAffected(res, model.ErrGameResolved, "set winner"); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE user SET points = points + ? WHERE id = ?`, points, winner.PlayerID); err != nil {
			return model.Persistence("award points", err)
		}

		winnerID := winner.PlayerID
		at := resolvedAt.UTC()
		result.Game.WinnerID = &winnerID
		result.Game.WinnerUsername = winner.PlayerUsername
		result.Game.ResolvedAt = &at
		result.Winner = winner
		result.Distance = distance
		result.Points = points
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrGameResolved) && result.Game.ID != 0 {
			return result, err
		}
		return nil, model.Persistence("resolve game", err)
	}
	return result, nil
}
