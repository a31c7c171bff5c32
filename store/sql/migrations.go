// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package sql

import (
	"context"
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/scaffold/store"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

var ErrNotMigrated = errors.New("database schema is out of date, run the migrate command")

// Migrate brings the schema up to date when automigrate is on; otherwise
// it only checks that a clean schema version is in place.
//
// The migration driver takes ownership of its connection and closes it,
// so migrations run over a connection of their own.
func (ds *DataStoreSQL) Migrate(ctx context.Context) error {
	l := log.FromContext(ctx)

	m, err := ds.migrator(ctx)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			l.Warnf("error closing migration source: %v", srcErr)
		}
		if dbErr != nil {
			l.Warnf("error closing migration database connection: %v", dbErr)
		}
	}()

	if !ds.automigrate {
		l.Infof("automigrate is OFF, will check db version compatibility")
		version, dirty, err := m.Version()
		if err == migrate.ErrNilVersion || dirty {
			return ErrNotMigrated
		} else if err != nil {
			return errors.Wrap(err, "failed to read schema version")
		}
		l.Infof("schema version %d", version)
		return nil
	}

	l.Infof("automigrate is ON, will apply migrations")
	err = m.Up()
	if err == migrate.ErrNoChange {
		l.Infof("no database schema changes to apply")
		return nil
	} else if err != nil {
		return errors.Wrap(err, "migration failed")
	}
	l.Infof("database migrations completed successfully")
	return nil
}

func (ds *DataStoreSQL) migrator(ctx context.Context) (*migrate.Migrate, error) {
	var (
		dir     = "migrations/" + string(ds.driver)
		sqlName string
		dbName  string
	)
	switch ds.driver {
	case store.DriverPostgres:
		sqlName, dbName = "postgres", "postgres"
	case store.DriverSQLite:
		sqlName, dbName = "sqlite3", "sqlite3"
	default:
		return nil, errors.Errorf("no migrations for driver %q", ds.driver)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration source")
	}

	conn, err := sql.Open(sqlName, ds.dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open migration connection")
	}
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to reach database for migration")
	}

	var driver database.Driver
	switch ds.driver {
	case store.DriverPostgres:
		driver, err = postgres.WithInstance(conn, &postgres.Config{
			MigrationsTable: postgres.DefaultMigrationsTable,
		})
	default:
		driver, err = sqlite3.WithInstance(conn, &sqlite3.Config{
			MigrationsTable: sqlite3.DefaultMigrationsTable,
		})
	}
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}
	m.Log = &migrateLogger{l: log.FromContext(ctx)}
	return m, nil
}

type migrateLogger struct {
	l *log.Logger
}

func (ml *migrateLogger) Printf(format string, v ...interface{}) {
	ml.l.Infof(format, v...)
}

func (ml *migrateLogger) Verbose() bool {
	return false
}
