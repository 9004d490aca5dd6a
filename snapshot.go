package followerwatch

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// SnapshotStore persists the last complete follower list as a single
// pretty-printed JSON file. The file is replaced wholesale on every save;
// there is no merging and no history.
type SnapshotStore struct {
	Path string
}

// NewSnapshotStore returns a store backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{Path: path}
}

// Load reads the previous snapshot. A missing file means a first run and
// yields an empty list with no error. A file that exists but cannot be
// read, parsed, or validated yields an empty list and a
// PersistenceReadError; callers treat the previous state as empty and log
// the error rather than aborting.
func (s *SnapshotStore) Load() ([]FollowerRecord, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return []FollowerRecord{}, nil
	}
	if err != nil {
		return []FollowerRecord{}, &PersistenceReadError{Path: s.Path, Err: err}
	}

	var records []FollowerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []FollowerRecord{}, &PersistenceReadError{
			Path: s.Path,
			Err:  errors.Wrap(err, "decoding snapshot JSON"),
		}
	}
	for i, f := range records {
		if f.Login == "" {
			return []FollowerRecord{}, &PersistenceReadError{
				Path: s.Path,
				Err:  errors.Errorf("record %d has no login", i),
			}
		}
	}
	return records, nil
}

// Save overwrites the snapshot with records in a single write call.
func (s *SnapshotStore) Save(records []FollowerRecord) error {
	if records == nil {
		// Persist an empty list as [], not null.
		records = []FollowerRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "writing snapshot %s", s.Path)
	}
	return nil
}
