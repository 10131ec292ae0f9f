package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"linkshortener/internal/domain"
	"linkshortener/internal/repository"
)

// Repository implements repository.LinkRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(databasePath string) (*Repository, error) {
	// WAL mode for concurrent readers, a busy timeout so writers queue on
	// the lock instead of failing, and immediate transactions so the
	// resolve transaction (read then write) never deadlocks on lock
	// upgrade. DSN parameters apply to every pooled connection.
	dsn := databasePath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

const linkColumns = "slug, target_url, created_at, updated_at, expires_at"

// CreateLink inserts a new link row. The slug's uniqueness is enforced by
// the primary key constraint; a violation surfaces as domain.ErrSlugExists.
func (r *Repository) CreateLink(ctx context.Context, slug, targetURL string, expiresAt *time.Time) (*domain.Link, error) {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO links (slug, target_url, created_at, updated_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		slug, targetURL, now, now, toNullTime(expiresAt))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return &domain.Link{
		Slug:      slug,
		TargetURL: targetURL,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiresAt,
		Clicks:    0,
	}, nil
}

// GetLink retrieves a link by slug with its aggregated click count
func (r *Repository) GetLink(ctx context.Context, slug string) (*domain.Link, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+linkColumns+", (SELECT COUNT(*) FROM link_click_tracking c WHERE c.slug = links.slug) FROM links WHERE slug = ?",
		slug)

	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return link, nil
}

// GetAllLinks retrieves all links with aggregated click counts, newest first.
// The outer join keeps links with zero clicks in the result.
func (r *Repository) GetAllLinks(ctx context.Context) ([]*domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.slug, l.target_url, l.created_at, l.updated_at, l.expires_at, COUNT(c.datetime)
		FROM links l
		LEFT JOIN link_click_tracking c ON l.slug = c.slug
		GROUP BY l.slug
		ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all links: %w", err)
	}
	defer rows.Close()

	var links []*domain.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// DeleteLink removes a link and its click history in a single transaction
func (r *Repository) DeleteLink(ctx context.Context, slug string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM links WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrLinkNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM link_click_tracking WHERE slug = ?", slug); err != nil {
		return fmt.Errorf("failed to delete click history: %w", err)
	}

	return tx.Commit()
}

// SlugExists checks if a slug is taken
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return count > 0, nil
}

// GetLinkClicks retrieves all click events for a slug ordered by datetime
func (r *Repository) GetLinkClicks(ctx context.Context, slug string) ([]*domain.ClickEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug, datetime, client_ip_address, client_browser, expires_at FROM link_click_tracking WHERE slug = ? ORDER BY datetime",
		slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get clicks: %w", err)
	}
	defer rows.Close()

	var clicks []*domain.ClickEvent
	for rows.Next() {
		var click domain.ClickEvent
		var expiresAt sql.NullTime
		if err := rows.Scan(&click.Slug, &click.Datetime, &click.ClientIPAddress, &click.ClientBrowser, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		click.ExpiresAt = fromNullTime(expiresAt)
		clicks = append(clicks, &click)
	}

	return clicks, rows.Err()
}

// ResolveLink looks up a link and records a click event for it within one
// transaction. A miss rolls back and returns domain.ErrLinkNotFound; a
// failed click insert rolls back so the caller never serves a redirect
// whose click was not durably recorded.
func (r *Repository) ResolveLink(ctx context.Context, slug string, meta domain.ClickMeta) (*domain.Link, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+linkColumns+", 0 FROM links WHERE slug = ?", slug)
	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to look up link: %w", err)
	}

	clientIP := meta.ClientIP
	if clientIP == "" {
		clientIP = "unknown"
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO link_click_tracking (slug, datetime, client_ip_address, client_browser, expires_at) VALUES (?, ?, ?, ?, ?)",
		slug, time.Now().UTC(), clientIP, meta.ClientBrowser, toNullTime(link.ExpiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to record click: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit resolve: %w", err)
	}

	return link, nil
}

// DeleteExpired removes all links and click events whose expiry horizon is
// before now. The two deletes are independent so click history is pruned
// even when its parent link is already gone.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, int64, error) {
	linkResult, err := r.db.ExecContext(ctx,
		"DELETE FROM links WHERE expires_at IS NOT NULL AND expires_at < ?", now.UTC())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete expired links: %w", err)
	}
	linksDeleted, _ := linkResult.RowsAffected()

	clickResult, err := r.db.ExecContext(ctx,
		"DELETE FROM link_click_tracking WHERE expires_at IS NOT NULL AND expires_at < ?", now.UTC())
	if err != nil {
		return linksDeleted, 0, fmt.Errorf("failed to delete expired clicks: %w", err)
	}
	clicksDeleted, _ := clickResult.RowsAffected()

	return linksDeleted, clicksDeleted, nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// scanner matches both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (*domain.Link, error) {
	var link domain.Link
	var expiresAt sql.NullTime
	if err := s.Scan(&link.Slug, &link.TargetURL, &link.CreatedAt, &link.UpdatedAt, &expiresAt, &link.Clicks); err != nil {
		return nil, err
	}
	link.ExpiresAt = fromNullTime(expiresAt)
	return &link, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

// Ensure Repository implements the interface
var _ repository.LinkRepository = (*Repository)(nil)
