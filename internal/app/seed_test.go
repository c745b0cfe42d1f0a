package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeed(t *testing.T) {
	cfg := testConfig(t)
	infra, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(infra.Close)

	svc, err := NewServices(infra)
	require.NoError(t, err)

	ctx := context.Background()
	seeded, err := Seed(ctx, svc.Employee, svc.Leave)
	require.NoError(t, err)
	assert.True(t, seeded)

	employees, err := svc.Employee.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 4)

	available := map[string]int{}
	for _, e := range employees {
		available[e.Name] = e.AvailableLeaves
	}
	assert.Equal(t, map[string]int{
		"John Doe":     20,
		"Jane Smith":   22,
		"Mike Johnson": 25,
		"Sarah Wilson": 15,
	}, available)

	leaves, err := svc.Leave.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, leaves, 6)

	seeded, err = Seed(ctx, svc.Employee, svc.Leave)
	require.NoError(t, err)
	assert.False(t, seeded)
}
