package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureResourceSkipsWhenSatisfied(t *testing.T) {
	acquired, err := ensureResource("thing",
		func() bool { return true },
		func() error { t.Fatal("acquire must not run"); return nil },
		nil,
	)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestEnsureResourceAcquiresAndVerifies(t *testing.T) {
	present := false
	acquired, err := ensureResource("thing",
		func() bool { return present },
		func() error { present = true; return nil },
		nil,
	)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestEnsureResourcePropagatesAcquireError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ensureResource("thing",
		func() bool { return false },
		func() error { return boom },
		nil,
	)
	assert.ErrorIs(t, err, boom)
}

func TestEnsureResourceFailsWhenStillUnverified(t *testing.T) {
	// The acquisition reports success but the check is the success criterion.
	_, err := ensureResource("thing",
		func() bool { return false },
		func() error { return nil },
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still missing")
}

func TestEnsureResourceUsesSeparateVerify(t *testing.T) {
	_, err := ensureResource("thing",
		func() bool { return false },
		func() error { return nil },
		func() bool { return false },
	)
	require.Error(t, err)

	acquired, err := ensureResource("thing",
		func() bool { return false },
		func() error { return nil },
		func() bool { return true },
	)
	require.NoError(t, err)
	assert.True(t, acquired)
}
