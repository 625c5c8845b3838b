// Package sqlite implements a durable store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Azulo-app/platform-dao-governance/store"
	"github.com/Azulo-app/platform-dao-governance/types"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Store)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS question_bindings (
		question_hash BLOB PRIMARY KEY,
		state BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS executions (
		question_hash BLOB NOT NULL,
		tx_hash BLOB NOT NULL,
		PRIMARY KEY (question_hash, tx_hash)
	)`,
	`CREATE TABLE IF NOT EXISTS proposal_questions (
		question_id BLOB PRIMARY KEY,
		proposal_id TEXT NOT NULL
	)`,
}

// Store keeps bindings and execution records in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an open database and creates the schema. The pool is limited to one connection so
// that units of work are serialized.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// View runs fn in a transaction that is always rolled back.
func (s *Store) View(ctx context.Context, fn func(store.Reader) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = sqlTx.Rollback() }()

	return fn(&tx{tx: sqlTx})
}

// Update runs fn in a transaction, committing only when fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&tx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}

		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type tx struct {
	tx    *sql.Tx
	depth int
}

func (t *tx) Binding(ctx context.Context, questionHash common.Hash) (types.BindingState, error) {
	var state []byte
	err := t.tx.QueryRowContext(ctx,
		`SELECT state FROM question_bindings WHERE question_hash = ?`, questionHash.Bytes(),
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Unbound(), nil
	}
	if err != nil {
		return types.BindingState{}, fmt.Errorf("failed to read binding: %w", err)
	}

	return types.BindingStateFromHash(common.BytesToHash(state)), nil
}

func (t *tx) IsExecuted(ctx context.Context, questionHash, txHash common.Hash) (bool, error) {
	var n int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM executions WHERE question_hash = ? AND tx_hash = ?`,
		questionHash.Bytes(), txHash.Bytes(),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to read execution record: %w", err)
	}

	return n > 0, nil
}

func (t *tx) ProposalID(ctx context.Context, questionID common.Hash) (string, bool, error) {
	var id string
	err := t.tx.QueryRowContext(ctx,
		`SELECT proposal_id FROM proposal_questions WHERE question_id = ?`, questionID.Bytes(),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read proposal id: %w", err)
	}

	return id, true, nil
}

func (t *tx) SetBinding(ctx context.Context, questionHash common.Hash, state types.BindingState) error {
	current, err := t.Binding(ctx, questionHash)
	if err != nil {
		return err
	}
	if err := store.CheckTransition(current, state); err != nil {
		return err
	}

	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO question_bindings (question_hash, state) VALUES (?, ?)
		ON CONFLICT (question_hash) DO UPDATE SET state = excluded.state`,
		questionHash.Bytes(), state.Hash().Bytes(),
	)
	if err != nil {
		return fmt.Errorf("failed to write binding: %w", err)
	}

	return nil
}

func (t *tx) MarkExecuted(ctx context.Context, questionHash, txHash common.Hash) error {
	executed, err := t.IsExecuted(ctx, questionHash, txHash)
	if err != nil {
		return err
	}
	if executed {
		return store.ErrAlreadyMarked
	}

	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO executions (question_hash, tx_hash) VALUES (?, ?)`,
		questionHash.Bytes(), txHash.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("failed to write execution record: %w", err)
	}

	return nil
}

func (t *tx) RecordQuestion(ctx context.Context, event types.ProposalQuestionCreated) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO proposal_questions (question_id, proposal_id) VALUES (?, ?)
		ON CONFLICT (question_id) DO UPDATE SET proposal_id = excluded.proposal_id`,
		event.QuestionID.Bytes(), event.ProposalID,
	)
	if err != nil {
		return fmt.Errorf("failed to record question: %w", err)
	}

	return nil
}

// Nest uses a savepoint so that a failed nested unit of work only discards its own writes.
func (t *tx) Nest(ctx context.Context, fn func(store.Tx) error) error {
	name := fmt.Sprintf("nested_%d", t.depth+1)
	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}

	if err := fn(&tx{tx: t.tx, depth: t.depth + 1}); err != nil {
		if _, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO "+name); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		if _, relErr := t.tx.ExecContext(ctx, "RELEASE "+name); relErr != nil {
			return errors.Join(err, relErr)
		}

		return err
	}

	if _, err := t.tx.ExecContext(ctx, "RELEASE "+name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}

	return nil
}
