package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

const tableName = "analysis"

// DuckDBWriter buffers rows in an in-memory DuckDB table and exports them to Parquet.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	sq         squirrel.StatementBuilderType
	outputPath string
}

// NewDuckDBWriter creates a new DuckDBWriter exporting to outputPath.
func NewDuckDBWriter(outputPath string) AnalysisWriter {
	return &DuckDBWriter{
		db:         nil,
		tx:         nil,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath: outputPath,
	}
}

// Initialize opens the database, creates the table and begins a transaction.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + tableName + ` (
			id TEXT,
			asset TEXT,
			time TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE,
			price_change DOUBLE,
			ma20 DOUBLE,
			ma50 DOUBLE,
			ma200 DOUBLE,
			bb_middle DOUBLE,
			bb_upper DOUBLE,
			bb_lower DOUBLE,
			rsi14 DOUBLE,
			macd DOUBLE,
			macd_signal DOUBLE,
			macd_hist DOUBLE,
			ma_vote INTEGER,
			rsi_vote INTEGER,
			macd_vote INTEGER,
			strength INTEGER,
			confidence DOUBLE,
			final_signal TEXT,
			abstained BOOLEAN
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeExportFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeExportFailed, "failed to begin transaction", err)
	}

	return nil
}

// Write inserts one row. Undefined indicator values are stored as NULL.
func (w *DuckDBWriter) Write(asset string, row types.EnrichedRow, signal types.SignalRow) error {
	if w.tx == nil {
		return errors.New(errors.ErrCodeExportFailed, "writer not initialized or transaction is nil")
	}

	_, err := w.sq.
		Insert(tableName).
		Columns(
			"id", "asset", "time", "open", "high", "low", "close", "volume", "price_change",
			"ma20", "ma50", "ma200", "bb_middle", "bb_upper", "bb_lower", "rsi14",
			"macd", "macd_signal", "macd_hist",
			"ma_vote", "rsi_vote", "macd_vote", "strength", "confidence", "final_signal", "abstained",
		).
		Values(
			uuid.New().String(), asset, row.Time,
			row.Open, row.High, row.Low, row.Close, row.Volume, nullable(row.PriceChange),
			nullable(row.MA20), nullable(row.MA50), nullable(row.MA200),
			nullable(row.BBMiddle), nullable(row.BBUpper), nullable(row.BBLower), nullable(row.RSI14),
			nullable(row.MACD), nullable(row.MACDSignal), nullable(row.MACDHist),
			signal.MAVote, signal.RSIVote, signal.MACDVote, signal.Strength, signal.Confidence,
			string(signal.Final), signal.Abstained,
		).
		RunWith(w.tx).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to insert row", err)
	}

	return nil
}

func nullable(value optional.Option[float64]) sql.NullFloat64 {
	v, err := value.Take()
	if err != nil {
		return sql.NullFloat64{Float64: 0, Valid: false}
	}

	return sql.NullFloat64{Float64: v, Valid: true}
}

// Finalize commits the transaction and exports the table to a Parquet file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeExportFailed, "writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	escaped := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err = w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM %s ORDER BY time) TO '%s' (FORMAT PARQUET)`, tableName, escaped))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to export to Parquet", err)
	}

	return w.outputPath, nil
}

// Close rolls back an unfinished transaction and closes the database.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to rollback transaction: %v", err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeExportFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
