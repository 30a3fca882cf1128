package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	prev := g.New()
	for i := 0; i < 100; i++ {
		next := g.New()
		assert.Len(t, next, 26)
		assert.Less(t, prev, next, "ids minted in the same millisecond must increase")
		prev = next
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 4, 9, 15, 0, 123_000_000, time.UTC)
	g := NewGenerator(func() time.Time { return fixed })

	got, err := Time(g.New())
	require.NoError(t, err)
	assert.True(t, fixed.Equal(got.UTC()), "got %s", got)
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}

func TestPackageNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
}
