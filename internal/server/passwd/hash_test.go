package passwd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h, err := Hash("passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotContains(t, h, "passw0rd")

	require.NoError(t, Compare(h, "passw0rd"))
	require.Error(t, Compare(h, "wrong"))
}

func TestHash_CostFloorEnforced(t *testing.T) {
	h, err := Hash("passw0rd", 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, MinCost, cost)
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := Hash("passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
