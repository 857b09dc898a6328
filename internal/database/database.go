package database

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE,
	password_hash TEXT
);

CREATE TABLE IF NOT EXISTS readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	voltage REAL,
	current REAL,
	power REAL,
	energy REAL,
	frequency REAL,
	pf REAL,
	timestamp TEXT
);

CREATE TABLE IF NOT EXISTS alerts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT,
	message TEXT,
	timestamp TEXT,
	resolved INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT,
	summary TEXT,
	report_type TEXT,
	status TEXT,
	file_path TEXT,
	created_at TEXT
);
`

// Databases created before the meter firmware reported energy,
// frequency and power factor lack those columns.
var columnMigrations = []string{
	`ALTER TABLE readings ADD COLUMN energy REAL`,
	`ALTER TABLE readings ADD COLUMN frequency REAL`,
	`ALTER TABLE readings ADD COLUMN pf REAL`,
}

// Connect opens the SQLite database at DB_PATH, bootstraps the schema
// and seeds the demo login when it does not exist yet.
func Connect() (*sqlx.DB, error) {
	return Open(viper.GetString("DB_PATH"))
}

// Open opens the database at the given path. ":memory:" works for tests.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if strings.Contains(path, ":memory:") {
		// every pooled connection would otherwise see its own empty DB
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	for _, stmt := range columnMigrations {
		if _, err := db.Exec(stmt); err != nil {
			if !strings.Contains(err.Error(), "duplicate column") {
				db.Close()
				return nil, err
			}
		}
	}
	if err := seedDemoUser(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func seedDemoUser(db *sqlx.DB) error {
	username := viper.GetString("DEMO_USER")
	if username == "" {
		return nil
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE username = ?`, username); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(viper.GetString("DEMO_PASSWORD")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, string(hash)); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("demo user created")
	return nil
}
