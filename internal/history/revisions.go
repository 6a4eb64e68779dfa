package history

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/breakledger/internal/codec"
	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// Operation names the command that produced a revision.
type Operation string

const (
	OpAccept   Operation = "accept"
	OpOverride Operation = "override"
	OpMigrate  Operation = "migrate"
	OpConvert  Operation = "convert"
)

// Revision is one recorded state of a config file.
type Revision struct {
	ID           string
	ConfigPath   string
	Seq          int64
	Operation    Operation
	DocumentHash string
	Canonical    []byte // RFC 8785 form of the document
}

// Document decodes the stored canonical form. Rows whose bytes are not
// canonical are reported as corrupt.
func (r Revision) Document() (config.Document, error) {
	if _, err := value.ParseCanonical(r.Canonical); err != nil {
		return config.Document{}, fmt.Errorf("revision %s: corrupt document: %w", r.ID, err)
	}
	doc, err := codec.JSON().Decode(r.Canonical)
	if err != nil {
		return config.Document{}, fmt.Errorf("revision %s: %w", r.ID, err)
	}
	return doc, nil
}

// Record appends doc as the next revision of configPath.
//
// If the latest revision of configPath already holds the same canonical
// bytes, nothing is written and that revision is returned with false.
func (s *Store) Record(ctx context.Context, configPath string, op Operation, doc config.Document) (Revision, bool, error) {
	canonical, err := codec.Canonical(doc)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: %w", err)
	}
	hash, err := codec.DocumentHash(doc)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: begin: %w", err)
	}
	defer tx.Rollback()

	latest, found, err := latestRevision(ctx, tx, configPath)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: %w", err)
	}
	if found && bytes.Equal(latest.Canonical, canonical) {
		slog.Debug("revision unchanged, skipping",
			"path", configPath,
			"seq", latest.Seq,
			"hash", hash,
		)
		return latest, false, nil
	}

	rev := Revision{
		ID:           s.newID(),
		ConfigPath:   configPath,
		Seq:          latest.Seq + 1,
		Operation:    op,
		DocumentHash: hash,
		Canonical:    canonical,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO revisions
		(id, config_path, seq, operation, document_hash, document)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rev.ID,
		rev.ConfigPath,
		rev.Seq,
		string(rev.Operation),
		rev.DocumentHash,
		string(rev.Canonical),
	)
	if err != nil {
		return Revision{}, false, fmt.Errorf("record revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, false, fmt.Errorf("record revision: commit: %w", err)
	}

	slog.Info("revision recorded",
		"path", configPath,
		"seq", rev.Seq,
		"operation", op,
		"hash", hash,
	)
	return rev, true, nil
}

// List returns every revision of configPath ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if none exist.
func (s *Store) List(ctx context.Context, configPath string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, config_path, seq, operation, document_hash, document
		FROM revisions
		WHERE config_path = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, configPath)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	revisions := []Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revisions, nil
}

// Latest returns the newest revision of configPath.
func (s *Store) Latest(ctx context.Context, configPath string) (Revision, bool, error) {
	return latestRevision(ctx, s.db, configPath)
}

// FindByHash returns every revision, across all paths, whose document has
// the given hash. Hashes ignore Unicode normal form.
func (s *Store) FindByHash(ctx context.Context, hash string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, config_path, seq, operation, document_hash, document
		FROM revisions
		WHERE document_hash = ?
		ORDER BY config_path COLLATE BINARY ASC, seq ASC, id COLLATE BINARY ASC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("query revisions by hash: %w", err)
	}
	defer rows.Close()

	revisions := []Revision{}
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revisions, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func latestRevision(ctx context.Context, q querier, configPath string) (Revision, bool, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, config_path, seq, operation, document_hash, document
		FROM revisions
		WHERE config_path = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, configPath)

	rev, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, false, nil
	}
	if err != nil {
		return Revision{}, false, err
	}
	return rev, true, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (Revision, error) {
	var (
		rev       Revision
		op        string
		canonical string
	)
	err := row.Scan(&rev.ID, &rev.ConfigPath, &rev.Seq, &op, &rev.DocumentHash, &canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, err
	}
	if err != nil {
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	rev.Operation = Operation(op)
	rev.Canonical = []byte(canonical)
	return rev, nil
}
