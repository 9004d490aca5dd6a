package followerwatch

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ConsoleReport writes human-readable diff lines to w, one per gained or
// lost follower.
func ConsoleReport(w io.Writer, diff DiffResult) {
	if !diff.HasChanges() {
		fmt.Fprintln(w, "No follower changes.")
		return
	}
	fmt.Fprintf(w, "Follower changes: %d new, %d lost\n",
		len(diff.Added), len(diff.Removed))
	for _, f := range diff.Added {
		fmt.Fprintf(w, "+ %s (%s)\n", f.Login, f.ProfileURL)
	}
	for _, f := range diff.Removed {
		fmt.Fprintf(w, "- %s (%s)\n", f.Login, f.ProfileURL)
	}
}

// WriteCIOutputs appends GitHub Actions style key=value lines to the step
// output file at path: has_changes, added_count, removed_count.
func WriteCIOutputs(path string, diff DiffResult) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening CI output file %s", path)
	}
	defer f.Close()
	outputs := fmt.Sprintf("has_changes=%t\nadded_count=%d\nremoved_count=%d\n",
		diff.HasChanges(), len(diff.Added), len(diff.Removed))
	if _, err := f.WriteString(outputs); err != nil {
		return errors.Wrapf(err, "writing CI outputs to %s", path)
	}
	return nil
}

// IssueTitle builds the title for a follower change issue dated at.
func IssueTitle(at time.Time) string {
	return fmt.Sprintf("Follower changes for %s", at.Format("2006-01-02"))
}

// IssueBody renders the diff as a markdown issue body: linked entries for
// each gained and lost follower, dated, with the total current follower
// count as a footer.
func IssueBody(diff DiffResult, totalFollowers int, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Follower changes detected on %s.\n", at.Format("2006-01-02"))
	if len(diff.Added) > 0 {
		fmt.Fprintf(&b, "\n### New followers (%d)\n\n", len(diff.Added))
		for _, f := range diff.Added {
			b.WriteString(followerEntry(f))
		}
	}
	if len(diff.Removed) > 0 {
		fmt.Fprintf(&b, "\n### Lost followers (%d)\n\n", len(diff.Removed))
		for _, f := range diff.Removed {
			b.WriteString(followerEntry(f))
		}
	}
	fmt.Fprintf(&b, "\nTotal followers: %d\n", totalFollowers)
	return b.String()
}

func followerEntry(f FollowerRecord) string {
	if f.AvatarURL == "" {
		return fmt.Sprintf("- [%s](%s)\n", f.Login, f.ProfileURL)
	}
	return fmt.Sprintf("- <img src=%q width=\"20\" height=\"20\"> [%s](%s)\n",
		f.AvatarURL, f.Login, f.ProfileURL)
}
