package followerwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func follower(login string) FollowerRecord {
	return FollowerRecord{
		Login:      login,
		AvatarURL:  "https://avatars.example.com/" + login,
		ProfileURL: "https://github.com/" + login,
	}
}

func logins(records []FollowerRecord) []string {
	out := make([]string, len(records))
	for i, f := range records {
		out[i] = f.Login
	}
	return out
}

func TestDiffNewFollower(t *testing.T) {
	previous := []FollowerRecord{follower("a")}
	current := []FollowerRecord{follower("a"), follower("b")}

	d := Diff(previous, current)
	assert.Equal(t, []string{"b"}, logins(d.Added))
	assert.Empty(t, d.Removed)
	assert.True(t, d.HasChanges())
}

func TestDiffAllFollowersLost(t *testing.T) {
	previous := []FollowerRecord{follower("a"), follower("b")}

	d := Diff(previous, nil)
	assert.Empty(t, d.Added)
	assert.Equal(t, []string{"a", "b"}, logins(d.Removed))
}

func TestDiffSetAlgebra(t *testing.T) {
	previous := []FollowerRecord{follower("a"), follower("b"), follower("c")}
	current := []FollowerRecord{follower("b"), follower("c"), follower("d"), follower("e")}

	d := Diff(previous, current)
	assert.Equal(t, []string{"d", "e"}, logins(d.Added))
	assert.Equal(t, []string{"a"}, logins(d.Removed))

	// Logins present on both sides never show up in either list.
	for _, f := range append(d.Added, d.Removed...) {
		assert.NotContains(t, []string{"b", "c"}, f.Login)
	}
}

func TestDiffIdentityIsLoginNotFields(t *testing.T) {
	previous := []FollowerRecord{{Login: "a", AvatarURL: "https://old.example.com/a"}}
	current := []FollowerRecord{{Login: "a", AvatarURL: "https://new.example.com/a"}}

	d := Diff(previous, current)
	assert.False(t, d.HasChanges(), "field drift on an unchanged login is not a change")
}

func TestDiffPreservesInputOrder(t *testing.T) {
	previous := []FollowerRecord{follower("z"), follower("m"), follower("a")}
	current := []FollowerRecord{follower("q"), follower("b")}

	d := Diff(previous, current)
	assert.Equal(t, []string{"q", "b"}, logins(d.Added))
	assert.Equal(t, []string{"z", "m", "a"}, logins(d.Removed))
}

func TestDiffIsPure(t *testing.T) {
	previous := []FollowerRecord{follower("a"), follower("b")}
	current := []FollowerRecord{follower("b"), follower("c")}

	first := Diff(previous, current)
	second := Diff(previous, current)
	require.Equal(t, first, second)
}

func TestDiffBothEmpty(t *testing.T) {
	d := Diff(nil, nil)
	assert.False(t, d.HasChanges())
}
