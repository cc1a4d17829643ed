package importer

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/logging"
	ordersvc "delivery-platform/internal/service/order"
	"github.com/pkg/errors"
)

// Column names recognised in the header row, matched case-insensitively.
const (
	colDestination   = "destination_address"
	colWeight        = "weight"
	colStatus        = "delivery_status"
	colStatusMessage = "status_message"
)

// OrderCreator is the slice of the order service the importer needs.
type OrderCreator interface {
	Create(ctx context.Context, in ordersvc.Input) (*domain.Order, error)
}

// CSVImporter reads order rows from a CSV export and creates them through the order service.
type CSVImporter struct {
	reader *csv.Reader
	orders OrderCreator
	logger *slog.Logger
}

func NewCSVImporter(r io.Reader, orders OrderCreator, logger *slog.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	if logger == nil {
		logger = logging.Discard()
	}
	return &CSVImporter{
		reader: csvr,
		orders: orders,
		logger: logger,
	}
}

// Run creates one order per non-blank row and returns how many were created.
// The first bad row aborts the run; orders created before it are kept.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, errors.Wrap(err, "read headers")
	}
	index := headerIndex(headers)
	for _, col := range []string{colDestination, colWeight} {
		if _, ok := index[col]; !ok {
			return 0, errors.Errorf("missing required column %q", col)
		}
	}

	imported := 0
	for {
		if err := ctx.Err(); err != nil {
			return imported, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, errors.Wrap(err, "read row")
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		in, err := parseRow(record, index)
		if err != nil {
			return imported, errors.Wrapf(err, "row %d", line)
		}
		created, err := i.orders.Create(ctx, in)
		if err != nil {
			return imported, errors.Wrapf(err, "row %d: create order", line)
		}
		i.logger.DebugContext(ctx, "order imported", slog.Int("row", line), slog.Int64("order_id", created.ID))
		imported++
	}

	i.logger.InfoContext(ctx, "order import finished", slog.Int("imported", imported))
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func parseRow(record []string, index map[string]int) (ordersvc.Input, error) {
	raw := pick(record, index, colWeight)
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ordersvc.Input{}, errors.Wrapf(domain.ErrValidation, "weight %q is not a number", raw)
	}
	return ordersvc.Input{
		DestinationAddress: pick(record, index, colDestination),
		Weight:             weight,
		DeliveryStatus:     pick(record, index, colStatus),
		StatusMessage:      pick(record, index, colStatusMessage),
	}, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
