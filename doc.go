// Package followerwatch tracks changes to a GitHub user's follower list.
//
// It fetches the complete follower list page by page, diffs it by login
// against the snapshot saved by the previous run, and reports what changed
// on the console, in CI step outputs, and optionally as a GitHub issue.
// The snapshot is replaced wholesale at the end of a successful run, so a
// failed run never leaves it half-written.
package followerwatch
