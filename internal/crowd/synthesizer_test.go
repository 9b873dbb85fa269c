package crowd

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowd-dynamics/crowdsynth/internal/config"
	"github.com/crowd-dynamics/crowdsynth/internal/sampling"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

func defaultStore(t *testing.T) *CrowdMeasures {
	t.Helper()
	cm, err := NewCrowdMeasures(nil, nil, config.DefaultStatistics())
	require.NoError(t, err)
	return cm
}

func TestDraw_Pedestrian(t *testing.T) {
	cm := defaultStore(t)
	synth := NewSynthesizer(sampling.NewSeeded(21))
	stats := config.DefaultStatistics()

	for i := 0; i < 200; i++ {
		agent, err := synth.Draw(schema.Pedestrian, cm)
		require.NoError(t, err)
		assert.Equal(t, schema.Pedestrian, agent.AgentType())

		sex, ok := agent.Sex()
		require.True(t, ok, "pedestrian must carry a sex entry")

		height, err := agent.Float(schema.MeasureHeight)
		require.NoError(t, err)
		assert.Equal(t, schema.DefaultPedestrianHeight, height, "height is fixed, not sampled")

		// Sampled parts stay inside their sex-specific bounds.
		prefix := string(sex) + "_"
		for _, part := range []string{schema.MeasureBideltoidBreadth, schema.MeasureChestDepth} {
			v, err := agent.Float(part)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, stats[prefix+part+"_min"])
			assert.LessOrEqual(t, v, stats[prefix+part+"_max"])
		}

		// Weight is keyed by agent type, so it obeys the pedestrian bounds.
		weight, err := agent.Float(schema.MeasureWeight)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, weight, stats["pedestrian_weight_min"])
		assert.LessOrEqual(t, weight, stats["pedestrian_weight_max"])
	}
}

func TestDraw_Bike(t *testing.T) {
	cm := defaultStore(t)
	synth := NewSynthesizer(sampling.NewSeeded(22))
	stats := config.DefaultStatistics()

	for i := 0; i < 200; i++ {
		agent, err := synth.Draw(schema.Bike, cm)
		require.NoError(t, err)
		assert.Equal(t, schema.Bike, agent.AgentType())

		_, ok := agent.Sex()
		assert.False(t, ok, "no sex is drawn for bikes")

		for _, part := range []string{
			schema.MeasureWheelWidth,
			schema.MeasureTotalLength,
			schema.MeasureHandlebarLength,
			schema.MeasureTopTubeLength,
		} {
			v, err := agent.Float(part)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, stats[part+"_min"])
			assert.LessOrEqual(t, v, stats[part+"_max"])
		}

		weight, err := agent.Float(schema.MeasureWeight)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, weight, stats["bike_weight_min"])
		assert.LessOrEqual(t, weight, stats["bike_weight_max"])
	}
}

func TestDraw_UnsupportedType(t *testing.T) {
	cm := defaultStore(t)
	synth := NewSynthesizer(nil)

	_, err := synth.Draw(schema.Custom, cm)
	assert.ErrorIs(t, err, ErrUnsupportedAgentType)

	_, err = synth.Draw(schema.AgentType("horse"), cm)
	assert.ErrorIs(t, err, ErrUnsupportedAgentType)
}

func TestDraw_WeightIgnoresSexPrefixedOverrides(t *testing.T) {
	// Plant absurd sex-prefixed weight parameters next to the real ones.
	// If weight resolution ever consulted the sex prefix, draws would land
	// in the decoy range.
	stats := config.DefaultStatistics()
	stats["male_weight_mean"] = 5000.0
	stats["male_weight_std_dev"] = 10.0
	stats["male_weight_min"] = 4900.0
	stats["male_weight_max"] = 5100.0
	stats["female_weight_mean"] = 5000.0
	stats["female_weight_std_dev"] = 10.0
	stats["female_weight_min"] = 4900.0
	stats["female_weight_max"] = 5100.0

	cm, err := NewCrowdMeasures(nil, nil, stats)
	require.NoError(t, err)

	synth := NewSynthesizer(sampling.NewSeeded(23))
	for i := 0; i < 100; i++ {
		agent, err := synth.Draw(schema.Pedestrian, cm)
		require.NoError(t, err)
		weight, err := agent.Float(schema.MeasureWeight)
		require.NoError(t, err)
		assert.LessOrEqual(t, weight, stats["pedestrian_weight_max"],
			"weight must come from pedestrian_weight_*, never male_weight_*")
	}
}

func TestDraw_EmptyStatisticsFails(t *testing.T) {
	cm, err := NewCrowdMeasures(nil, nil, nil)
	require.NoError(t, err)

	synth := NewSynthesizer(sampling.NewSeeded(24))
	_, err = synth.Draw(schema.Pedestrian, cm)
	assert.ErrorIs(t, err, ErrMissingStatistic)
}

func TestDrawAgentType(t *testing.T) {
	cm := defaultStore(t)
	synth := NewSynthesizer(sampling.NewSeeded(25))

	const draws = 10000
	pedestrians := 0
	for i := 0; i < draws; i++ {
		agentType, err := synth.DrawAgentType(cm)
		require.NoError(t, err)
		switch agentType {
		case schema.Pedestrian:
			pedestrians++
		case schema.Bike:
		default:
			t.Fatalf("unexpected agent type %q", agentType)
		}
	}

	freq := float64(pedestrians) / draws
	if math.Abs(freq-0.8) > 0.02 {
		t.Errorf("pedestrian frequency = %v, want 0.8 ± 0.02", freq)
	}
}

func TestDrawAgentType_ProportionMismatch(t *testing.T) {
	stats := config.DefaultStatistics()
	stats[schema.StatPedestrianProportion] = 0.4
	stats[schema.StatBikeProportion] = 0.5

	cm, err := NewCrowdMeasures(nil, nil, stats)
	require.NoError(t, err)

	synth := NewSynthesizer(sampling.NewSeeded(26))
	_, err = synth.DrawAgentType(cm)
	if !errors.Is(err, sampling.ErrProportionMismatch) {
		t.Errorf("error = %v, want ErrProportionMismatch", err)
	}
}

func TestSynthesizer_Deterministic(t *testing.T) {
	cm := defaultStore(t)
	a := NewSynthesizer(sampling.NewSeeded(1234))
	b := NewSynthesizer(sampling.NewSeeded(1234))

	for i := 0; i < 20; i++ {
		agentA, err := a.Draw(schema.Pedestrian, cm)
		require.NoError(t, err)
		agentB, err := b.Draw(schema.Pedestrian, cm)
		require.NoError(t, err)

		if diff := cmp.Diff(agentA.Measures(), agentB.Measures()); diff != "" {
			t.Fatalf("draw %d: same seed diverged (-a +b):\n%s", i, diff)
		}
	}
}
