//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchAsYouType(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Type / to search"), "Should show idle hint")

	require.NoError(t, tf.Search("apple"))
	require.True(t, tf.SeePlain("Apple & Blackberry Crumble"), "Should list matching recipes")
	require.True(t, tf.SeePlain("Apple Frangipan Tart"), "Should list matching recipes")
	require.True(t, tf.SeePlain("2 recipes"), "Should show the result count")

	// Keys typed inside the debounce window collapse into fewer requests
	searches := tf.api.Searches()
	require.NotEmpty(t, searches)
	require.Less(t, len(searches), len("apple"), "debounce should skip intermediate queries: %v", searches)
	require.Equal(t, "apple", searches[len(searches)-1])
}

func TestInitialQueryFromArgs(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("chicken"), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Chicken Handi"), "Should search for the positional query")
	require.True(t, tf.SeePlain("Kentucky Fried Chicken"), "Should search for the positional query")
}

func TestNoResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Search("zzz"))
	require.True(t, tf.SeePlain("No recipes found"), "Should report an empty result")
}

func TestSearchErrorAndRetry(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.api.SetFailing(true)
	require.NoError(t, tf.Search("beef"))
	require.True(t, tf.SeePlain("press r to retry"), "Should show the error with a retry hint")

	tf.api.SetFailing(false)
	require.NoError(t, tf.Escape())
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys("r"))
	require.True(t, tf.SeePlainSince(mark, "Beef and Mustard Pie", 3*time.Second), "Retry should fetch again")
}

func TestClearSearchCache(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Search("pie"))
	require.True(t, tf.SeePlain("Beef and Mustard Pie"))
	require.True(t, tf.SeePlain("cache 1/50"), "Settled search should be cached")

	require.NoError(t, tf.Escape())
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys("C"))
	require.True(t, tf.SeePlainSince(mark, "Search cache cleared", 2*time.Second))
	require.True(t, tf.SeePlainSince(mark, "cache 0/50", 2*time.Second))
}
