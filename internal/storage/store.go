package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rkfall/rkfall/internal/dynamo"
	"github.com/rkfall/rkfall/internal/token"
)

const (
	recordFile     = "record.json"
	trajectoryFile = "states.csv"
)

// ErrNotFound indicates a token with no stored record.
var ErrNotFound = errors.New("storage: record not found")

var csvHeader = []string{"tick", "body", "mass", "x", "y", "vel_x", "vel_y"}

var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }

// closeInto closes c and keeps its error in err unless err is already set.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

// Store keeps one directory per minted token under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) dir(id token.ID) string {
	return filepath.Join(s.baseDir, id.String())
}

// Record writes the event and, when present, its trajectory. A failed write
// leaves no directory behind.
func (s *Store) Record(ev *token.MintEvent, trajectory []dynamo.System) (err error) {
	dir := s.dir(ev.TokenID)
	if _, statErr := os.Stat(dir); statErr == nil {
		return fmt.Errorf("storage: %s already recorded", ev.TokenID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()

	metaFile, err := createFile(filepath.Join(dir, recordFile))
	if err != nil {
		return err
	}
	defer closeInto(metaFile, &err)

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ev); err != nil {
		return err
	}

	if len(trajectory) == 0 {
		return nil
	}

	csvFile, err := createFile(filepath.Join(dir, trajectoryFile))
	if err != nil {
		return err
	}
	defer closeInto(csvFile, &err)

	return WriteCSV(csvFile, trajectory)
}

// List returns every readable record, oldest first.
func (s *Store) List() ([]*token.MintEvent, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*token.MintEvent{}, nil
		}
		return nil, err
	}

	events := make([]*token.MintEvent, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, err := token.ParseID(entry.Name())
		if err != nil {
			continue
		}
		ev, err := s.Load(id)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

func (s *Store) Load(id token.ID) (*token.MintEvent, error) {
	data, err := os.ReadFile(filepath.Join(s.dir(id), recordFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var ev token.MintEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", id, err)
	}
	return &ev, nil
}

// LoadTrajectory returns the recorded systems of a token, or an empty slice
// if it was minted without a trajectory.
func (s *Store) LoadTrajectory(id token.ID) ([]dynamo.System, error) {
	file, err := os.Open(filepath.Join(s.dir(id), trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			if _, err := s.Load(id); err != nil {
				return nil, err
			}
			return []dynamo.System{}, nil
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// Restore mints every stored record into l.
func (s *Store) Restore(l *token.Ledger) error {
	events, err := s.List()
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := l.Mint(ev.Owner, ev.TokenID); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes one row per body per tick. Values are raw fixed-point
// integers.
func WriteCSV(w io.Writer, trajectory []dynamo.System) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for tick, sys := range trajectory {
		for _, b := range sys {
			row := []string{
				strconv.Itoa(tick),
				strconv.Itoa(b.ID),
				strconv.FormatUint(b.Mass, 10),
				strconv.FormatInt(b.X, 10),
				strconv.FormatInt(b.Y, 10),
				strconv.FormatInt(b.VelX, 10),
				strconv.FormatInt(b.VelY, 10),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV is the inverse of WriteCSV.
func ReadCSV(r io.Reader) ([]dynamo.System, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.System{}, nil
	}

	trajectory := make([]dynamo.System, 0)
	for i, record := range records[1:] {
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		b, err := parseBody(record[1:])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}

		switch {
		case tick == len(trajectory):
			trajectory = append(trajectory, dynamo.System{b})
		case tick == len(trajectory)-1:
			trajectory[tick] = append(trajectory[tick], b)
		default:
			return nil, fmt.Errorf("storage: row %d: tick %d out of order", i+1, tick)
		}
	}

	return trajectory, nil
}

func parseBody(fields []string) (dynamo.Body, error) {
	var (
		b   dynamo.Body
		err error
	)
	if b.ID, err = strconv.Atoi(fields[0]); err != nil {
		return b, err
	}
	if b.Mass, err = strconv.ParseUint(fields[1], 10, 64); err != nil {
		return b, err
	}
	ints := []*int64{&b.X, &b.Y, &b.VelX, &b.VelY}
	for i, dst := range ints {
		if *dst, err = strconv.ParseInt(fields[2+i], 10, 64); err != nil {
			return b, err
		}
	}
	return b, nil
}
