package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lexis/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "creates mysql connection with valid config",
			cfg: config.DatabaseConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				Database: "testdb",
				Username: "testuser",
				Password: "testpass",
			},
			wantDriver: "mysql",
		},
		{
			name: "empty driver falls back to mysql with pool settings",
			cfg: config.DatabaseConfig{
				Host:            "localhost",
				Port:            3306,
				Database:        "testdb",
				Username:        "testuser",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			wantDriver: "mysql",
		},
		{
			name: "creates postgres connection",
			cfg: config.DatabaseConfig{
				Driver:   "postgres",
				Host:     "db.example.com",
				Port:     5432,
				Database: "lexis",
				Username: "admin",
				Password: "secret",
				TLS:      true,
			},
			wantDriver: "postgres",
		},
		{
			name:       "creates in-memory sqlite connection",
			cfg:        config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
			wantDriver: "sqlite",
		},
		{
			name:    "rejects unknown driver",
			cfg:     config.DatabaseConfig{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	got := postgresDSN(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "lexis",
		Username: "user",
		Password: "pw",
		Params:   map[string]string{"timezone": "UTC", "application_name": "lexis"},
	})
	assert.Equal(t, "host=localhost port=5432 user=user dbname=lexis sslmode=disable password=pw application_name=lexis timezone=UTC", got)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "file", path: "data/lexis.db", want: "data/lexis.db?_time_format=sqlite"},
		{name: "in memory", path: ":memory:", want: ":memory:?_time_format=sqlite"},
		{name: "existing params", path: "file:lexis.db?cache=shared", want: "file:lexis.db?cache=shared&_time_format=sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path))
		})
	}
}

func TestOpen_SQLiteStoresTimesWithoutMonotonicClock(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE stamps (at DATETIME NOT NULL)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO stamps (at) VALUES (?)", time.Now())
	require.NoError(t, err)

	var stored string
	require.NoError(t, db.Get(&stored, "SELECT CAST(at AS TEXT) FROM stamps"))
	assert.NotContains(t, stored, "m=")
	assert.NotContains(t, stored, "UTC")
}

func TestEnsureSchema(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	// Running twice must be a no-op
	require.NoError(t, EnsureSchema(ctx, db))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	assert.Equal(t, []string{"review_events", "user_words", "word_meanings", "words"}, tables)
}

func TestIsDuplicateKey(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, EnsureSchema(context.Background(), db))

	_, err = db.Exec("INSERT INTO words (word) VALUES ('apple')")
	require.NoError(t, err)
	_, sqliteDupErr := db.Exec("INSERT INTO words (word) VALUES ('apple')")
	require.Error(t, sqliteDupErr)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "mysql duplicate entry", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: true},
		{name: "mysql other error", err: &mysql.MySQLError{Number: 1045}, want: false},
		{name: "wrapped postgres unique violation", err: errors.Join(errors.New("insert"), &pq.Error{Code: "23505"}), want: true},
		{name: "postgres foreign key violation", err: &pq.Error{Code: "23503"}, want: false},
		{name: "sqlite unique constraint", err: sqliteDupErr, want: true},
		{name: "plain error", err: errors.New("connection refused"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}

func TestInsertReturningID(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		setupMock func(mock sqlmock.Sqlmock)
		want      int64
		wantErr   bool
	}{
		{
			name:   "mysql uses last insert id",
			driver: "mysql",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO words \\(word\\) VALUES \\(\\?\\)").
					WithArgs("apple").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			want: 42,
		},
		{
			name:   "postgres rebinds and uses RETURNING",
			driver: "postgres",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INSERT INTO words \\(word\\) VALUES \\(\\$1\\) RETURNING id").
					WithArgs("apple").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			want: 7,
		},
		{
			name:   "exec error",
			driver: "mysql",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO words").WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := InsertReturningID(context.Background(), sqlx.NewDb(db, tt.driver), "INSERT INTO words (word) VALUES (?)", "apple")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
