package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
			id SERIAL PRIMARY KEY,
			sender_id INT NOT NULL REFERENCES users(id),
			receiver_id INT NOT NULL REFERENCES users(id),
			status TEXT NOT NULL CHECK (status IN ('PENDING','ACCEPTED','REJECTED')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (sender_id, receiver_id)
			)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			friend_id INT NOT NULL REFERENCES users(id),
			UNIQUE (user_id, friend_id)
			)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			type TEXT NOT NULL CHECK (type IN ('ELECTRICITY','WATER','SCHOOL','MEDICAL','OTHER')),
			description TEXT,
			status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','PAID','REJECTED')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id SERIAL PRIMARY KEY,
			sender_id INT NOT NULL REFERENCES users(id),
			receiver_id INT NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT 'TEXT',
			invoice_id BIGINT,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('NOTIFICATION','SUPPORT','SYSTEM')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		`CREATE TABLE IF NOT EXISTS currencies (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL
			)`,
		`INSERT INTO currencies (code, name) VALUES
			('XOF', 'Franc CFA'),
			('EUR', 'Euro'),
			('USD', 'US Dollar')
			ON CONFLICT (code) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			currency_id INT NOT NULL REFERENCES currencies(id),
			invoice_id BIGINT REFERENCES invoices(id),
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
