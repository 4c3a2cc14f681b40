package scenario_test

import (
	"context"
	"os"
	"testing"

	"github.com/loneking/confine/pkg/confine/solver"
	"github.com/loneking/confine/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndBuildThreeRooksFixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/rrr_b2_mb1_pass.json")
	require.NoError(t, err)

	c, err := scenario.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Scenario.Bound)
	assert.Equal(t, 3, c.Scenario.Pieces.Rooks)
	assert.True(t, c.Scenario.WhiteCanPass)

	s, err := scenario.Build(c)
	require.NoError(t, err)

	T, tempo, err := solver.SolveTempo(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 169, T.Len(), "fixture must reproduce the committed golden trap size")
	assert.Equal(t, 113, tempo.Len(), "fixture must reproduce the committed golden tempo size")
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := scenario.Decode([]byte("{not json"))
	require.Error(t, err)
}

func TestBuildRejectsUnknownMoveBoundMode(t *testing.T) {
	raw := []byte(`{"scenario":{"bound":1,"move_bound":1,"move_bound_mode":"sideways","pieces":{"rooks":1}}}`)
	c, err := scenario.Decode(raw)
	require.NoError(t, err)

	_, err = scenario.Build(c)
	require.Error(t, err)
}

func TestBuildRejectsNegativeBound(t *testing.T) {
	raw := []byte(`{"scenario":{"bound":-1,"move_bound":1,"pieces":{"rooks":1}}}`)
	c, err := scenario.Decode(raw)
	require.NoError(t, err)

	_, err = scenario.Build(c)
	require.Error(t, err)
}

func TestBuildRejectsZeroMoveBound(t *testing.T) {
	raw := []byte(`{"scenario":{"bound":1,"move_bound":0,"pieces":{"rooks":1}}}`)
	c, err := scenario.Decode(raw)
	require.NoError(t, err)

	_, err = scenario.Build(c)
	require.Error(t, err)
}
