package upstream_test

import (
	"testing"

	"github.com/jrsteele09/go-ticktick-mcp/upstream"
	"github.com/stretchr/testify/require"
)

func TestIsLoginAllowed(t *testing.T) {
	t.Run("case-insensitive match", func(t *testing.T) {
		require.True(t, upstream.IsLoginAllowed("K-Wakamatsu-TMS", "k-wakamatsu-tms"))
	})

	t.Run("login not on list", func(t *testing.T) {
		require.False(t, upstream.IsLoginAllowed("alice", "k-wakamatsu-tms"))
	})

	t.Run("empty list denies everyone", func(t *testing.T) {
		require.False(t, upstream.IsLoginAllowed("alice", ""))
	})

	t.Run("multiple entries with whitespace", func(t *testing.T) {
		require.True(t, upstream.IsLoginAllowed("Bob", "alice, bob ,carol"))
		require.False(t, upstream.IsLoginAllowed("dave", "alice, bob ,carol"))
	})
}

func TestAllowList(t *testing.T) {
	list := upstream.NewAllowList("Alice,BOB")

	require.True(t, list.Allows("alice"))
	require.True(t, list.Allows("bob"))
	require.False(t, list.Allows("carol"))

	require.False(t, upstream.NewAllowList(" , ,").Allows("alice"))
}
