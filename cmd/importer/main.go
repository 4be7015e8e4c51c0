package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/masanorih/address2zip/internal/config"
	"github.com/masanorih/address2zip/internal/dataset"
	"github.com/masanorih/address2zip/internal/models"
)

func main() {
	file := flag.String("file", "", "Path to the KEN_ALL CSV file to import")
	encoding := flag.String("encoding", "sjis", "CSV encoding: sjis or utf8")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	rows, err := dataset.LoadFile(*file, *encoding)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d rows\n", len(rows))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure table exists
	err = createTableIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Insert rows
	err = insertRows(conn, rows)
	if err != nil {
		fmt.Printf("Error inserting rows: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(rows))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d rows\n", len(rows))
}

func createTableIfNotExists(conn *pgx.Conn) error {
	query := `
	CREATE TABLE IF NOT EXISTS postal_entries (
		id BIGSERIAL PRIMARY KEY,
		postal_code VARCHAR(7) NOT NULL,
		prefecture VARCHAR(255) NOT NULL,
		city VARCHAR(255) NOT NULL,
		district VARCHAR(255) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS postal_entries_prefecture_city_idx ON postal_entries (prefecture, city);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func insertRows(conn *pgx.Conn, rows []models.Row) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"postal_entries"},
		[]string{"postal_code", "prefecture", "city", "district"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]interface{}, error) {
			r := rows[i]
			return []interface{}{r.PostalCode, r.Prefecture, r.City, r.District}, nil
		}),
	)
	return err
}

func verifyImport(conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM postal_entries").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("row count mismatch: expected %d, got %d", expectedCount, count)
	}

	var sample string
	err = conn.QueryRow(context.Background(), "SELECT postal_code FROM postal_entries LIMIT 1").Scan(&sample)
	if err != nil {
		return fmt.Errorf("failed to check sample row: %w", err)
	}

	fmt.Printf("Sample postal code: %s\n", sample)
	return nil
}
