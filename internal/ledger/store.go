package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pacewatch/internal/model"

	"github.com/BurntSushi/toml"
)

// ErrNotFound indicates no ledger document exists for the month.
var ErrNotFound = errors.New("ledger: month not found")

// Store reads and writes monthly ledger documents keyed by month.
// Implementations replace the whole document on save; serializing
// concurrent writers is the caller's concern.
type Store interface {
	Load(month model.MonthKey) (*model.MonthlyLedger, error)
	Save(l *model.MonthlyLedger) error
}

// LegacyLoader supplies the old single-file transaction log, if one
// exists. Used only on the one-shot migration path.
type LegacyLoader func() ([]model.Transaction, error)

// GetOrCreateCurrentMonth returns the ledger for the month containing
// now, creating an empty one if absent. When the month document is
// missing and a legacy loader is supplied, the new ledger is seeded
// from legacy transactions dated within the month.
func GetOrCreateCurrentMonth(s Store, now time.Time, legacy LegacyLoader) (*model.MonthlyLedger, error) {
	key := model.MonthOf(now)

	l, err := s.Load(key)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	l = model.NewLedger(key)
	if legacy != nil {
		old, legacyErr := legacy()
		if legacyErr == nil {
			l.Transactions = FilterMonth(old, key)
		}
	}
	return l, nil
}

// FilterMonth returns the transactions whose dates fall inside the
// given month. This is the legacy-log migration filter.
func FilterMonth(txs []model.Transaction, month model.MonthKey) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if month.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// FileStore persists one TOML document per month under dir/months.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at the given data directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) monthPath(month model.MonthKey) string {
	return filepath.Join(s.dir, "months", month.String()+".toml")
}

// Load reads the ledger document for the month.
func (s *FileStore) Load(month model.MonthKey) (*model.MonthlyLedger, error) {
	data, err := os.ReadFile(s.monthPath(month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading ledger %s: %w", month, err)
	}

	var l model.MonthlyLedger
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", month, err)
	}
	if _, err := model.ParseMonth(l.Month.String()); err != nil {
		return nil, err
	}
	return &l, nil
}

// Save writes the full ledger document, replacing any previous one.
func (s *FileStore) Save(l *model.MonthlyLedger) error {
	if _, err := model.ParseMonth(l.Month.String()); err != nil {
		return err
	}

	dir := filepath.Join(s.dir, "months")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, l.Month.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	enc := toml.NewEncoder(tmp)
	if err := enc.Encode(l); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding ledger %s: %w", l.Month, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing ledger %s: %w", l.Month, err)
	}

	return os.Rename(tmp.Name(), s.monthPath(l.Month))
}

// LoadLegacy reads the pre-monthly single-file transaction log.
// Returns ErrNotFound if no legacy log exists.
func (s *FileStore) LoadLegacy() ([]model.Transaction, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "transactions.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading legacy log: %w", err)
	}

	var doc struct {
		Transactions []model.Transaction `toml:"transactions"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing legacy log: %w", err)
	}
	return doc.Transactions, nil
}
