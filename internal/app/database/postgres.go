package database

import (
	"context"
	"log"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	Context    context.Context
	Connection *pgxpool.Pool
}

var conn sync.Once
var database *Postgres

func NewPostgres(dsn string) (*Postgres, error) {
	conn.Do(func() {
		context := context.Background()
		db, err := pgxpool.New(context, dsn)
		if err != nil {
			log.Fatalln("unable to create connection pool: %w", err)
		}

		database = &Postgres{
			Context:    context,
			Connection: db,
		}

		prepareTables()
	})

	return database, nil
}

func (db *Postgres) Ping() error {
	return db.Connection.Ping(db.Context)
}

func (db *Postgres) CloseConnection() {
	db.Connection.Close()
}

func prepareTables() {
	sql := `CREATE TABLE IF NOT EXISTS migrations(
		id SERIAL PRIMARY KEY,
		migration VARCHAR(255) NOT NULL,
		batch INTEGER NOT NULL
	);`

	_, err := database.Connection.Exec(database.Context, sql)

	if err != nil {
		log.Fatalln("Unable to prepare tables:", err)
	}
}
