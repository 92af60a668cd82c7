// Package migration applies the embedded, forward-only SQL migrations and
// keeps a checksummed log of what has been applied in schema_migrations.
package migration

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/colposcopy-api/util"
	"gorm.io/gorm"
)

//go:embed sql
var embedded embed.FS

// ErrChecksumMismatch is returned when an applied migration file was edited afterwards.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Migration is a single SQL file.
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// SchemaMigration is a row of the schema_migrations log.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Checksum  string    `gorm:"size:64;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Status describes one known migration and whether it has been applied.
type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Migrator reads migrations from a directory of an fs.FS and applies them through gorm.
type Migrator struct {
	db   *gorm.DB
	fsys fs.FS
	dir  string
}

// New returns a Migrator using the embedded SQL for the dialect of db.
func New(db *gorm.DB) *Migrator {
	return NewWithFS(db, embedded, path.Join("sql", db.Dialector.Name()))
}

// NewWithFS returns a Migrator reading *.sql files from dir inside fsys.
func NewWithFS(db *gorm.DB, fsys fs.FS, dir string) *Migrator {
	return &Migrator{db: db, fsys: fsys, dir: dir}
}

// Load reads every NNN_name.sql file, sorted by version.
// Files without a numeric prefix are skipped.
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory %s: %w", m.dir, err)
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, other, name)
		}
		seen[version] = name

		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration file %s: %w", name, err)
		}

		sum := sha256.Sum256(content)
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			SQL:      string(content),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]SchemaMigration, error) {
	var rows []SchemaMigration
	if err := m.db.WithContext(ctx).Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	applied := make(map[int]SchemaMigration, len(rows))
	for _, r := range rows {
		applied[r.Version] = r
	}
	return applied, nil
}

// Up applies every pending migration in version order, each in its own
// transaction, and returns how many were applied. Applied migrations are
// verified against their recorded checksum first.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	migrations, err := m.Load()
	if err != nil {
		return 0, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	for _, mig := range migrations {
		if rec, ok := applied[mig.Version]; ok && rec.Checksum != mig.Checksum {
			return 0, fmt.Errorf("%w: version %d (%s) recorded %s, file has %s",
				ErrChecksumMismatch, mig.Version, mig.Name, rec.Checksum, mig.Checksum)
		}
	}

	count := 0
	for _, mig := range migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return count, fmt.Errorf("apply migration %d (%s): %w", mig.Version, mig.Name, err)
		}
		util.LogEvent(util.Event{
			Type:    util.EventMigrationApplied,
			Message: fmt.Sprintf("applied migration %s", mig.Name),
			Details: map[string]interface{}{"version": mig.Version, "checksum": mig.Checksum},
		})
		count++
	}
	return count, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range splitStatements(mig.SQL) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("execute SQL: %w", err)
			}
		}
		return tx.Create(&SchemaMigration{
			Version:   mig.Version,
			Name:      mig.Name,
			Checksum:  mig.Checksum,
			AppliedAt: time.Now().UTC(),
		}).Error
	})
}

// Status lists all known migrations with their applied state.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(migrations))
	for _, mig := range migrations {
		s := Status{Version: mig.Version, Name: mig.Name}
		if rec, ok := applied[mig.Version]; ok {
			at := rec.AppliedAt
			s.Applied = true
			s.AppliedAt = &at
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

// splitStatements breaks a file into single statements, since the MySQL
// driver rejects multi-statement Exec. Full-line "--" comments are dropped.
func splitStatements(sql string) []string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	var stmts []string
	for _, part := range strings.Split(b.String(), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
