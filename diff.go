package followerwatch

// DiffResult holds the followers gained and lost between two snapshots.
// Both slices preserve the order of the list they were filtered from.
type DiffResult struct {
	Added   []FollowerRecord
	Removed []FollowerRecord
}

// HasChanges reports whether the diff contains any additions or removals.
func (d DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// Diff compares two follower lists by login. Added holds the current
// records whose login is absent from previous; Removed holds the previous
// records whose login is absent from current. Identity is the login alone:
// a record whose other fields changed but whose login is present on both
// sides appears in neither list.
func Diff(previous, current []FollowerRecord) DiffResult {
	prevLogins := loginSet(previous)
	curLogins := loginSet(current)

	var d DiffResult
	for _, f := range current {
		if _, ok := prevLogins[f.Login]; !ok {
			d.Added = append(d.Added, f)
		}
	}
	for _, f := range previous {
		if _, ok := curLogins[f.Login]; !ok {
			d.Removed = append(d.Removed, f)
		}
	}
	return d
}

func loginSet(records []FollowerRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, f := range records {
		set[f.Login] = struct{}{}
	}
	return set
}
