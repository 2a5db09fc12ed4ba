package storage

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MySQLStore keeps entries in a two-column table, one row per key. Unlike
// the file backend the database serializes concurrent writers, so two
// processes mutating the cart at once cannot lose an update at the storage
// layer.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}
	return &MySQLStore{db: db}, nil
}

// Migrate brings the storage schema up to date.
func (s *MySQLStore) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}
	driver, err := migratemysql.WithInstance(s.db.DB, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "prepare migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "prepare migrations")
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	log.Info("Storage schema is up to date")
	return nil
}

func (s *MySQLStore) Get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, "SELECT entry_value FROM storage_entries WHERE entry_key = ?", key)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "select storage entry")
	}
	return value, nil
}

func (s *MySQLStore) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO storage_entries (entry_key, entry_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)",
		key, value,
	)
	return errors.Wrap(err, "upsert storage entry")
}

func (s *MySQLStore) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM storage_entries WHERE entry_key = ?", key)
	return errors.Wrap(err, "delete storage entry")
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}
