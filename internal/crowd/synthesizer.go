package crowd

import (
	"fmt"

	"github.com/crowd-dynamics/crowdsynth/internal/sampling"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// Synthesizer draws complete measure sets from a crowd store. It owns the
// sampler (and therefore the random source), so two synthesizers seeded the
// same way produce the same crowd.
type Synthesizer struct {
	sampler *sampling.Sampler
}

// NewSynthesizer builds a synthesizer around the given sampler. A nil
// sampler gets a fresh, unseeded one.
func NewSynthesizer(sampler *sampling.Sampler) *Synthesizer {
	if sampler == nil {
		sampler = sampling.New(nil)
	}
	return &Synthesizer{sampler: sampler}
}

// Draw synthesizes one agent's measures for the given type. Pedestrians and
// bikes are supported; anything else fails with ErrUnsupportedAgentType.
func (s *Synthesizer) Draw(agentType schema.AgentType, cm *CrowdMeasures) (*AgentMeasures, error) {
	switch agentType {
	case schema.Pedestrian:
		return s.drawPedestrian(cm)
	case schema.Bike:
		return s.drawBike(cm)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAgentType, agentType)
	}
}

// drawPedestrian samples sex first, then the sex-prefixed body parts, fixes
// height at the reference stature, and samples weight under the
// "pedestrian_" prefix. Weight is keyed by agent type, never by sex; the
// prefix rule lives on the part descriptor in the schema registry.
func (s *Synthesizer) drawPedestrian(cm *CrowdMeasures) (*AgentMeasures, error) {
	maleProportion, err := cm.Statistic(schema.StatMaleProportion)
	if err != nil {
		return nil, err
	}
	sex, err := s.sampler.Sex(maleProportion)
	if err != nil {
		return nil, err
	}

	measures := map[string]Value{
		schema.MeasureSex:    sex,
		schema.MeasureHeight: schema.DefaultPedestrianHeight,
	}
	for _, part := range schema.SampledPedestrianParts() {
		value, err := s.drawMeasure(cm, schema.Pedestrian, sex, part)
		if err != nil {
			return nil, err
		}
		measures[part.Name] = value
	}

	weight, err := s.drawMeasure(cm, schema.Pedestrian, sex, schema.WeightPart())
	if err != nil {
		return nil, err
	}
	measures[schema.MeasureWeight] = weight

	return NewAgentMeasures(schema.Pedestrian, measures)
}

// drawBike samples the unprefixed bike geometry parts and the
// "bike_"-prefixed weight. No sex is drawn for bikes.
func (s *Synthesizer) drawBike(cm *CrowdMeasures) (*AgentMeasures, error) {
	measures := make(map[string]Value)
	for _, part := range schema.SampledBikeParts() {
		value, err := s.drawMeasure(cm, schema.Bike, "", part)
		if err != nil {
			return nil, err
		}
		measures[part.Name] = value
	}

	weight, err := s.drawMeasure(cm, schema.Bike, "", schema.WeightPart())
	if err != nil {
		return nil, err
	}
	measures[schema.MeasureWeight] = weight

	return NewAgentMeasures(schema.Bike, measures)
}

// drawMeasure resolves the four distribution parameters for a part under its
// prefix rule and draws from the truncated normal they describe.
func (s *Synthesizer) drawMeasure(cm *CrowdMeasures, agentType schema.AgentType, sex schema.Sex, part schema.Part) (float64, error) {
	mean, err := cm.Statistic(schema.StatKey(part, agentType, sex, "mean"))
	if err != nil {
		return 0, err
	}
	stdDev, err := cm.Statistic(schema.StatKey(part, agentType, sex, "std_dev"))
	if err != nil {
		return 0, err
	}
	min, err := cm.Statistic(schema.StatKey(part, agentType, sex, "min"))
	if err != nil {
		return 0, err
	}
	max, err := cm.Statistic(schema.StatKey(part, agentType, sex, "max"))
	if err != nil {
		return 0, err
	}
	return s.sampler.TruncNormal(mean, stdDev, min, max)
}

// DrawAgentType tower-samples an agent type from the pedestrian and bike
// population proportions. The two proportions must sum to exactly 1.
func (s *Synthesizer) DrawAgentType(cm *CrowdMeasures) (schema.AgentType, error) {
	pedestrian, err := cm.Statistic(schema.StatPedestrianProportion)
	if err != nil {
		return "", err
	}
	bike, err := cm.Statistic(schema.StatBikeProportion)
	if err != nil {
		return "", err
	}

	tag, err := s.sampler.Tower([]sampling.WeightedOption{
		{Tag: string(schema.Pedestrian), Proportion: pedestrian},
		{Tag: string(schema.Bike), Proportion: bike},
	})
	if err != nil {
		return "", err
	}
	return schema.AgentType(tag), nil
}
