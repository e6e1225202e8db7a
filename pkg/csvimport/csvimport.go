// Package csvimport turns an uploaded CSV file into transactions and tracks the attempt as an Upload.
//
// Expected columns, after a header row that is ignored:
//
//	date (YYYY-MM-DD), amount (decimal), type (INCOME|EXPENSE, any case), description
//
// A malformed row is logged and skipped; it never fails the batch. Read or persistence
// faults fail the whole attempt and are recorded on the Upload.
package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/finance"

	"github.com/shopspring/decimal"
)

// MinFields is the number of columns a row needs.
const MinFields = 4

// MaxAmountLen caps the amount field before it is parsed.
const MaxAmountLen = 32

// Tracker persists Upload records.
type Tracker interface {
	Create(ctx context.Context, u *models.Upload) error
	Save(ctx context.Context, u *models.Upload) error
}

// Users resolves the uploading user.
type Users interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// Transactions persists parsed rows.
type Transactions interface {
	Create(ctx context.Context, t *models.Transaction) error
}

// Source is the uploaded file.
type Source struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Pipeline runs synchronously inside the caller's request.
type Pipeline struct {
	uploads Tracker
	users   Users
	txs     Transactions
	log     *slog.Logger
	now     func() time.Time
}

func New(uploads Tracker, users Users, txs Transactions, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{uploads: uploads, users: users, txs: txs, log: logger.With("component", "csvimport"), now: time.Now}
}

// Process imports src for username. The returned Upload is in SUCCESS or FAILED state,
// or nil when the attempt could not be recorded at all.
func (p *Pipeline) Process(ctx context.Context, src Source, username string) (*models.Upload, error) {
	user, err := p.users.ByUsername(ctx, username)
	if err != nil {
		return nil, p.fail(ctx, nil, fmt.Errorf("resolve user: %w", err))
	}
	up := &models.Upload{
		UserID:      user.ID,
		FileName:    src.Name,
		FileSize:    src.Size,
		ContentType: src.ContentType,
		UploadDate:  p.now(),
		Status:      models.UploadUploaded,
	}
	if err := p.uploads.Create(ctx, up); err != nil {
		return nil, p.fail(ctx, nil, fmt.Errorf("record upload: %w", err))
	}
	up.Status = models.UploadProcessing
	if err := p.uploads.Save(ctx, up); err != nil {
		return up, p.fail(ctx, up, fmt.Errorf("mark processing: %w", err))
	}

	rows, err := p.parse(ctx, src.Body, user.ID)
	if err != nil {
		return up, p.fail(ctx, up, err)
	}
	for i := range rows {
		if err := p.txs.Create(ctx, &rows[i]); err != nil {
			return up, p.fail(ctx, up, fmt.Errorf("save transaction: %w", err))
		}
	}

	up.Status = models.UploadSuccess
	up.Processed = true
	up.RecordsCount = len(rows)
	up.ErrorDetails = ""
	if err := p.uploads.Save(ctx, up); err != nil {
		return up, p.fail(ctx, up, fmt.Errorf("mark success: %w", err))
	}
	p.log.InfoContext(ctx, "processed transactions from file", "file", src.Name, "upload_id", up.ID, "records", len(rows))
	return up, nil
}

// fail records cause on up (when present) and returns the caller-facing import error.
func (p *Pipeline) fail(ctx context.Context, up *models.Upload, cause error) error {
	p.log.ErrorContext(ctx, "error processing CSV file", "error", cause)
	if up != nil {
		up.Status = models.UploadFailed
		up.Processed = false
		up.ErrorDetails = cause.Error()
		if err := p.uploads.Save(ctx, up); err != nil {
			p.log.ErrorContext(ctx, "cannot record upload failure", "upload_id", up.ID, "error", err)
		}
	}
	return apperr.Import("Failed to process CSV file: "+cause.Error(), cause)
}

func (p *Pipeline) parse(ctx context.Context, body io.Reader, userID uint) ([]models.Transaction, error) {
	if body == nil {
		return nil, errors.New("read csv: no file content")
	}
	r := csv.NewReader(body)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var out []models.Transaction
	for line := 0; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			if line > 0 {
				p.log.WarnContext(ctx, "skipping invalid record", "line", perr.Line, "error", perr.Err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 0 {
			continue // header
		}
		t, err := ParseRecord(record, userID)
		if err != nil {
			physical, _ := r.FieldPos(0)
			p.log.WarnContext(ctx, "skipping invalid record", "line", physical, "record", strings.Join(record, ","), "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ParseRecord builds a CSV_UPLOAD transaction from one data row.
func ParseRecord(record []string, userID uint) (models.Transaction, error) {
	if len(record) < MinFields {
		return models.Transaction{}, fmt.Errorf("invalid record format: %d fields, want %d", len(record), MinFields)
	}
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q", record[0])
	}
	raw := strings.TrimSpace(record[1])
	if len(raw) > MaxAmountLen {
		return models.Transaction{}, fmt.Errorf("invalid amount: %d characters, max %d", len(raw), MaxAmountLen)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q", record[1])
	}
	if err := finance.ValidateAmount(amount); err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", record[1], err)
	}
	typ, ok := models.ParseTransactionType(record[2])
	if !ok {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", record[2])
	}
	in := finance.TransactionInput{
		Amount:      amount,
		Date:        date,
		Type:        typ,
		Description: record[3],
	}
	return finance.NewTransaction(userID, in, models.SourceCSVUpload), nil
}
