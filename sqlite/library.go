package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/libcache"
)

// Compile-time interface verification.
var _ libcache.LibraryService = (*LibraryService)(nil)

// LibraryService implements libcache.LibraryService using SQLite.
type LibraryService struct {
	db *DB
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{db: db}
}

const libraryColumns = "name, status, fallback, message, xml_libdoc_path, source_path, artifact_hash, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AppendLibraries stores finalized libraries in a single transaction.
// Pending libraries are skipped.
func (s *LibraryService) AppendLibraries(ctx context.Context, libs []*libcache.Library) ([]*libcache.Library, error) {
	for _, lib := range libs {
		if err := lib.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var stored []*libcache.Library
	for _, lib := range libs {
		if !lib.Finalized() {
			continue
		}

		existing, err := findLibraryByName(ctx, tx, lib.Name)
		if err != nil && libcache.ErrorCode(err) != libcache.ENOTFOUND {
			return nil, err
		}

		// A failure never replaces a stored success, it only updates the message.
		if existing != nil && existing.Status == libcache.StatusSuccess && lib.Status == libcache.StatusError {
			existing.Message = lib.Message
			existing.UpdatedAt = now
			if _, err := tx.ExecContext(ctx, `
				UPDATE libraries SET message = ?, updated_at = ? WHERE name = ?
			`, existing.Message, existing.UpdatedAt.Format(time.RFC3339), existing.Name); err != nil {
				return nil, err
			}
			stored = append(stored, existing)
			continue
		}

		rec := *lib
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO libraries (`+libraryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				status = excluded.status,
				fallback = excluded.fallback,
				message = excluded.message,
				xml_libdoc_path = excluded.xml_libdoc_path,
				source_path = excluded.source_path,
				artifact_hash = excluded.artifact_hash,
				updated_at = excluded.updated_at
		`, rec.Name, string(rec.Status), rec.Fallback, rec.Message, rec.XMLLibdocPath,
			rec.SourcePath, rec.ArtifactHash, rec.UpdatedAt.Format(time.RFC3339)); err != nil {
			return nil, err
		}
		stored = append(stored, &rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindLibraryByName retrieves a library by name.
func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*libcache.Library, error) {
	return findLibraryByName(ctx, s.db, name)
}

// FindLibraries retrieves libraries matching the filter ordered by name.
func (s *LibraryService) FindLibraries(ctx context.Context, filter libcache.LibraryFilter) ([]*libcache.Library, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + libraryColumns + " FROM libraries WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var libs []*libcache.Library
	for rows.Next() {
		lib, err := scanLibrary(rows)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}

	return libs, rows.Err()
}

// DeleteLibrary removes a library record.
func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM libraries WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return libcache.Errorf(libcache.ENOTFOUND, "library not found")
	}

	return nil
}

func findLibraryByName(ctx context.Context, q rowQuerier, name string) (*libcache.Library, error) {
	row := q.QueryRowContext(ctx, "SELECT "+libraryColumns+" FROM libraries WHERE name = ?", name)
	lib, err := scanLibrary(row)
	if err == sql.ErrNoRows {
		return nil, libcache.Errorf(libcache.ENOTFOUND, "library not found")
	}
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func scanLibrary(row rowScanner) (*libcache.Library, error) {
	var lib libcache.Library
	var status, updatedAt string

	if err := row.Scan(&lib.Name, &status, &lib.Fallback, &lib.Message, &lib.XMLLibdocPath,
		&lib.SourcePath, &lib.ArtifactHash, &updatedAt); err != nil {
		return nil, err
	}
	lib.Status = libcache.Status(status)

	var err error
	lib.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	return &lib, nil
}
