package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/okian/podium/internal/domain/medal"

	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// openSQLite opens the database at path and verifies the connection.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func checkTable(table string) (string, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("%w: invalid table name %q", ErrMalformedRecord, table)
	}
	return table, nil
}

// LoadSQLite reads a medal dataset from table in the SQLite database at path.
// The table must have the Year, Sport, Team, Sex and Medal columns; NULL or
// NA medals are dropped.
func LoadSQLite(ctx context.Context, path, table string) (*medal.Dataset, error) {
	table, err := checkTable(table)
	if err != nil {
		return nil, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(`SELECT "%s", "%s", "%s", "%s", "%s" FROM "%s"`,
		ColYear, ColSport, ColTeam, ColSex, ColMedal, table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var records []medal.Record
	for n := 1; rows.Next(); n++ {
		var year, sport, team, sex, medalValue sql.NullString
		if err := rows.Scan(&year, &sport, &team, &sex, &medalValue); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, n, err)
		}
		rec, ok, err := parseRecord(year.String, sport.String, team.String, sex.String, medalValue.String,
			fmt.Sprintf("row %d", n))
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return medal.NewDataset(records), nil
}

// WriteSQLite (re)creates table in the database at path and stores rows.
// Rows with an empty Medal are stored with a NULL medal.
func WriteSQLite(ctx context.Context, path, table string, rows []medal.Record) error {
	table, err := checkTable(table)
	if err != nil {
		return err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	create := fmt.Sprintf(`CREATE TABLE "%s" (
		"%s" INTEGER NOT NULL,
		"%s" TEXT NOT NULL,
		"%s" TEXT NOT NULL,
		"%s" TEXT NOT NULL,
		"%s" TEXT
	)`, table, ColYear, ColSport, ColTeam, ColSex, ColMedal)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO "%s" VALUES (?, ?, ?, ?, ?)`, table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		var m any
		if r.Medal != "" {
			m = r.Medal
		}
		if _, err := stmt.ExecContext(ctx, r.Year, r.Sport, r.Team, r.Sex, m); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}
