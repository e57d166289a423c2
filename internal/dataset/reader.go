package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProgressFunc observes cumulative read progress: processed rows so far out
// of the total row count, which is known before the first batch is yielded.
// It is invoked once per batch. Readers never depend on what observers do
// with the numbers.
type ProgressFunc func(processed, total int)

// DefaultBatchSize bounds how many rows a single batch may hold.
const DefaultBatchSize = 500_000

// ReadAccidents streams the accident file to fn in batches of at most
// batchSize rows, in file order, covering the file exactly once.
// Concatenating the batches reconstructs the full table.
func ReadAccidents(ctx context.Context, path string, batchSize int, progress ProgressFunc, fn func([]AccidentRecord) error) error {
	return readBatches(ctx, path, batchSize, progress, newAccidentDecoder, fn)
}

// ReadVehicles streams the vehicle file to fn in batches, in file order.
func ReadVehicles(ctx context.Context, path string, batchSize int, progress ProgressFunc, fn func([]VehicleRecord) error) error {
	return readBatches(ctx, path, batchSize, progress, newVehicleDecoder, fn)
}

// decoder turns one CSV record into a typed row.
type decoder[T any] func(fields []string) (T, error)

// readBatches is the shared chunked-read loop. The file is scanned once up
// front for its total row count so progress can be reported against a known
// denominator, then decoded batch by batch.
func readBatches[T any](
	ctx context.Context,
	path string,
	batchSize int,
	progress ProgressFunc,
	newDecoder func(header []string) (decoder[T], error),
	fn func([]T) error,
) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total, err := countDataRows(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 1<<20))

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: %s: empty file", ErrCorruptData, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptData, path, err)
	}

	decode, err := newDecoder(header)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	batch := make([]T, 0, min(batchSize, total))
	processed := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		processed += len(batch)
		if progress != nil {
			progress(processed, total)
		}
		// fn may retain the batch, so start a fresh one.
		batch = make([]T, 0, min(batchSize, max(total-processed, 0)))
		return nil
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrCorruptData, path, line, err)
		}

		row, err := decode(fields)
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrCorruptData, path, line, err)
		}

		batch = append(batch, row)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}

// countDataRows counts the data rows of a CSV file (excluding the header)
// without parsing them. This stands in for the row count a columnar file
// format would carry in its metadata.
func countDataRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	var (
		buf      = make([]byte, 1<<20)
		lines    int
		lastByte byte
		seen     bool
	)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			seen = true
			for _, b := range buf[:n] {
				if b == '\n' {
					lines++
				}
			}
			lastByte = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
		}
	}
	if seen && lastByte != '\n' {
		lines++ // final line without trailing newline
	}
	if lines == 0 {
		return 0, nil
	}
	return lines - 1, nil // minus header
}

func newAccidentDecoder(header []string) (decoder[AccidentRecord], error) {
	idx, err := columnIndex(header, accidentColumns())
	if err != nil {
		return nil, err
	}
	return func(fields []string) (AccidentRecord, error) {
		var rec AccidentRecord
		var err error

		rec.Index = fields[idx[ColAccidentIndex]]
		rec.District = fields[idx[ColDistrict]]
		rec.UrbanRural = fields[idx[ColUrbanRural]]
		rec.Severity = fields[idx[ColSeverity]]
		rec.DayOfWeek = fields[idx[ColDayOfWeek]]
		rec.JunctionDetail = fields[idx[ColJunctionDetail]]
		rec.JunctionControl = fields[idx[ColJunctionControl]]

		if rec.Latitude, err = parseFloat(fields[idx[ColLatitude]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColLatitude, err)
		}
		if rec.Longitude, err = parseFloat(fields[idx[ColLongitude]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColLongitude, err)
		}
		if rec.Hour, err = parseHour(fields[idx[ColHour]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColHour, err)
		}
		if rec.Month, err = parseInt(fields[idx[ColMonth]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColMonth, err)
		}
		if rec.Year, err = parseInt(fields[idx[ColYear]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColYear, err)
		}
		if rec.Casualties, err = parseInt(fields[idx[ColCasualties]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColCasualties, err)
		}
		if rec.PedHuman, err = parseCode(fields[idx[ColPedHuman]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColPedHuman, err)
		}
		if rec.PedPhysical, err = parseCode(fields[idx[ColPedPhysical]]); err != nil {
			return rec, fmt.Errorf("%s: %v", ColPedPhysical, err)
		}
		return rec, nil
	}, nil
}

func newVehicleDecoder(header []string) (decoder[VehicleRecord], error) {
	idx, err := columnIndex(header, vehicleColumns())
	if err != nil {
		return nil, err
	}
	return func(fields []string) (VehicleRecord, error) {
		return VehicleRecord{
			Index:          fields[idx[ColAccidentIndex]],
			VehicleType:    fields[idx[ColVehicleType]],
			AgeBand:        fields[idx[ColAgeBand]],
			JourneyPurpose: fields[idx[ColJourneyPurpose]],
			SexOfDriver:    fields[idx[ColSexOfDriver]],
		}, nil
	}, nil
}

// parseFloat parses a coordinate cell. Empty cells read as zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInt parses a required integer cell.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseHour parses the nullable Hour cell. Empty means the hour was not
// recorded; any numeric value is kept verbatim, even outside 0-23.
func parseHour(s string) (int16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return HourUnknown, nil
	}
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

// parseCode parses a pedestrian-crossing code cell. Empty cells read as -1,
// the release's "data missing or out of range" code.
func parseCode(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	v, err := strconv.ParseFloat(s, 64) // some releases encode codes as floats
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
