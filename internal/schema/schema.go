// Package schema enumerates the agent types, body parts and crowd-level
// statistics the synthesis layer understands. It is a pure registry: both
// measure-set validation and crowd-statistics validation are driven from the
// tables in this package, so the two always agree on what "complete" means.
package schema

import "strings"

// AgentType identifies the kind of agent a measure set describes.
type AgentType string

// Recognised agent types.
const (
	Pedestrian AgentType = "pedestrian"
	Bike       AgentType = "bike"
	Custom     AgentType = "custom"
)

// AgentTypes returns the recognised agent types in their canonical order.
// The order matters: tower sampling accumulates proportions in this order.
func AgentTypes() []AgentType {
	return []AgentType{Pedestrian, Bike, Custom}
}

// Valid reports whether t is a recognised agent type.
func (t AgentType) Valid() bool {
	switch t {
	case Pedestrian, Bike, Custom:
		return true
	}
	return false
}

// Sex is the binary sex tag used both as a sampled measure value and as a
// prefix discriminator when resolving distribution parameter names.
type Sex string

// Recognised sex tags.
const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex normalises a free-form sex string. Comparison is case-insensitive.
func ParseSex(s string) (Sex, bool) {
	switch strings.ToLower(s) {
	case string(Male):
		return Male, true
	case string(Female):
		return Female, true
	}
	return "", false
}

// Measure names shared by validation, synthesis and dataset import.
const (
	MeasureSex              = "sex"
	MeasureBideltoidBreadth = "bideltoid_breadth"
	MeasureChestDepth       = "chest_depth"
	MeasureHeight           = "height"
	MeasureWeight           = "weight"
	MeasureWheelWidth       = "wheel_width"
	MeasureTotalLength      = "total_length"
	MeasureHandlebarLength  = "handlebar_length"
	MeasureTopTubeLength    = "top_tube_length"
	MeasureMomentOfInertia  = "moment_of_inertia"
)

// DefaultPedestrianHeight is the reference stature in centimetres assigned to
// every synthesized pedestrian. Height is not sampled.
const DefaultPedestrianHeight = 170.0

// PrefixRule says how a part's distribution parameters are keyed in the crowd
// statistics table. Encoding the rule per part keeps the resolution logic in
// data rather than special-cased string concatenation.
type PrefixRule int

const (
	// PrefixNone keys parameters by the bare part name (bike geometry).
	PrefixNone PrefixRule = iota
	// PrefixSex keys parameters by "male_"/"female_" + part name.
	PrefixSex
	// PrefixAgentType keys parameters by "pedestrian_"/"bike_" + part name.
	// Weight is always keyed this way, never by sex.
	PrefixAgentType
)

// Part describes one sampled measure and how its four distribution parameters
// (mean, std_dev, min, max) are keyed in the crowd statistics table.
type Part struct {
	Name   string
	Prefix PrefixRule
}

// SampledPedestrianParts lists the pedestrian measures drawn from truncated
// normal distributions, in draw order. Sex and height are handled separately:
// sex is drawn from the male-proportion statistic and height is fixed.
func SampledPedestrianParts() []Part {
	return []Part{
		{Name: MeasureBideltoidBreadth, Prefix: PrefixSex},
		{Name: MeasureChestDepth, Prefix: PrefixSex},
	}
}

// SampledBikeParts lists the bike measures drawn from truncated normal
// distributions, in draw order.
func SampledBikeParts() []Part {
	return []Part{
		{Name: MeasureWheelWidth, Prefix: PrefixNone},
		{Name: MeasureTotalLength, Prefix: PrefixNone},
		{Name: MeasureHandlebarLength, Prefix: PrefixNone},
		{Name: MeasureTopTubeLength, Prefix: PrefixNone},
	}
}

// WeightPart is the weight measure. Its parameters are keyed by agent type
// regardless of sex; this is a behavioural contract, not a convenience.
func WeightPart() Part {
	return Part{Name: MeasureWeight, Prefix: PrefixAgentType}
}

// RequiredMeasures returns the exact measure-name set a valid measure set for
// the given agent type must carry. Custom agents mandate nothing beyond
// weight (extra keys are allowed for them, but that is the caller's check).
func RequiredMeasures(t AgentType) (map[string]struct{}, bool) {
	required := map[string]struct{}{MeasureWeight: {}}
	switch t {
	case Pedestrian:
		required[MeasureSex] = struct{}{}
		required[MeasureBideltoidBreadth] = struct{}{}
		required[MeasureChestDepth] = struct{}{}
		required[MeasureHeight] = struct{}{}
	case Bike:
		required[MeasureWheelWidth] = struct{}{}
		required[MeasureTotalLength] = struct{}{}
		required[MeasureHandlebarLength] = struct{}{}
		required[MeasureTopTubeLength] = struct{}{}
	case Custom:
		// No predefined parts.
	default:
		return nil, false
	}
	return required, true
}

// Crowd-statistic key names that are not per-part parameters.
const (
	StatMaleProportion       = "male_proportion"
	StatPedestrianProportion = "pedestrian_proportion"
	StatBikeProportion       = "bike_proportion"
)

// statParamSuffixes are the four parameters every distributed part carries.
var statParamSuffixes = []string{"mean", "std_dev", "min", "max"}

// RequiredCrowdStatKeys returns the complete set of keys a non-empty crowd
// statistics table must supply: the three population proportions plus
// mean/std_dev/min/max for every part under every applicable prefix.
func RequiredCrowdStatKeys() map[string]struct{} {
	keys := map[string]struct{}{
		StatMaleProportion:       {},
		StatPedestrianProportion: {},
		StatBikeProportion:       {},
	}

	sexPrefixed := []string{MeasureBideltoidBreadth, MeasureChestDepth, MeasureHeight}
	for _, sex := range []Sex{Male, Female} {
		for _, part := range sexPrefixed {
			for _, suffix := range statParamSuffixes {
				keys[string(sex)+"_"+part+"_"+suffix] = struct{}{}
			}
		}
	}

	for _, t := range []AgentType{Pedestrian, Bike} {
		for _, suffix := range statParamSuffixes {
			keys[string(t)+"_"+MeasureWeight+"_"+suffix] = struct{}{}
		}
	}

	for _, p := range SampledBikeParts() {
		for _, suffix := range statParamSuffixes {
			keys[p.Name+"_"+suffix] = struct{}{}
		}
	}

	return keys
}

// StatKey builds the statistics-table key for one parameter of a part, under
// the part's prefix rule. The sex argument is consulted only for PrefixSex
// parts; the agent type only for PrefixAgentType parts.
func StatKey(part Part, t AgentType, sex Sex, param string) string {
	var prefix string
	switch part.Prefix {
	case PrefixSex:
		prefix = string(sex) + "_"
	case PrefixAgentType:
		prefix = string(t) + "_"
	}
	return prefix + part.Name + "_" + param
}
