// Package crowd synthesizes per-agent measure sets from population-level
// statistics. An AgentMeasures is validated once at construction and
// immutable afterwards; the Synthesizer draws new sets from a CrowdMeasures
// store using the statistical primitives in internal/sampling.
package crowd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// Sentinel errors for the synthesis layer. Match with errors.Is.
var (
	// ErrSchemaViolation flags a measure set with wrong, missing or extra
	// keys, an invalid sex tag, or an unrecognised agent type.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrMissingStatistic flags a required key absent from the crowd
	// statistics table, at store construction or at individual lookup.
	ErrMissingStatistic = errors.New("missing crowd statistic")

	// ErrUnsupportedAgentType flags a draw request for an agent type the
	// synthesizer cannot sample.
	ErrUnsupportedAgentType = errors.New("unsupported agent type")
)

// Value is a single measure value: a float64 in native units for physical
// measures, or a schema.Sex for the sex entry.
type Value interface{}

// AgentMeasures is the schema-validated measure set for one agent. It is
// either fully valid or never constructed; there is no partially-valid
// state, and no mutation after construction.
type AgentMeasures struct {
	agentType schema.AgentType
	measures  map[string]Value
}

// NewAgentMeasures validates and builds a measure set for the given agent
// type. The measure keys must exactly equal the type's required set (weight
// included); custom agents accept any keys beyond the mandatory weight.
// Pedestrians must carry a sex entry equal, case-insensitively, to "male" or
// "female"; the stored value is normalised to the canonical schema.Sex.
func NewAgentMeasures(agentType schema.AgentType, measures map[string]Value) (*AgentMeasures, error) {
	required, ok := schema.RequiredMeasures(agentType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown agent type %q", ErrSchemaViolation, agentType)
	}

	var missing []string
	for name := range required {
		if _, present := measures[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing measures for %s: %s",
			ErrSchemaViolation, agentType, strings.Join(missing, ", "))
	}

	if agentType != schema.Custom {
		var extra []string
		for name := range measures {
			if _, wanted := required[name]; !wanted {
				extra = append(extra, name)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return nil, fmt.Errorf("%w: extra measures provided for %s: %s",
				ErrSchemaViolation, agentType, strings.Join(extra, ", "))
		}
	}

	copied := make(map[string]Value, len(measures))
	for name, value := range measures {
		copied[name] = value
	}

	if agentType == schema.Pedestrian {
		sex, err := normalizeSex(copied[schema.MeasureSex])
		if err != nil {
			return nil, err
		}
		copied[schema.MeasureSex] = sex
	}

	return &AgentMeasures{agentType: agentType, measures: copied}, nil
}

// normalizeSex accepts a schema.Sex or a free-form string and returns the
// canonical tag.
func normalizeSex(v Value) (schema.Sex, error) {
	switch sex := v.(type) {
	case schema.Sex:
		if parsed, ok := schema.ParseSex(string(sex)); ok {
			return parsed, nil
		}
	case string:
		if parsed, ok := schema.ParseSex(sex); ok {
			return parsed, nil
		}
	}
	return "", fmt.Errorf("%w: invalid sex %v, expected %q or %q",
		ErrSchemaViolation, v, schema.Male, schema.Female)
}

// AgentType returns the agent type this measure set describes.
func (m *AgentMeasures) AgentType() schema.AgentType {
	return m.agentType
}

// Len returns the number of measures stored.
func (m *AgentMeasures) Len() int {
	return len(m.measures)
}

// Get returns the raw value of a named measure.
func (m *AgentMeasures) Get(name string) (Value, bool) {
	v, ok := m.measures[name]
	return v, ok
}

// Float returns a named measure as a float64.
func (m *AgentMeasures) Float(name string) (float64, error) {
	v, ok := m.measures[name]
	if !ok {
		return 0, fmt.Errorf("%w: no measure %q", ErrSchemaViolation, name)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: measure %q is not numeric", ErrSchemaViolation, name)
	}
	return f, nil
}

// Sex returns the sex entry. It is only present for pedestrians.
func (m *AgentMeasures) Sex() (schema.Sex, bool) {
	v, ok := m.measures[schema.MeasureSex]
	if !ok {
		return "", false
	}
	sex, ok := v.(schema.Sex)
	return sex, ok
}

// Measures returns a copy of the measure mapping.
func (m *AgentMeasures) Measures() map[string]Value {
	copied := make(map[string]Value, len(m.measures))
	for name, value := range m.measures {
		copied[name] = value
	}
	return copied
}

// WithDerived returns a new measure set with derived quantities (for example
// the moment of inertia computed from a generated body shape) merged in. The
// receiver is not modified. Derived keys bypass the extra-key check the same
// way the original set's validation already ran: the base keys were
// validated at construction and derived measures are additive by definition.
func (m *AgentMeasures) WithDerived(derived map[string]float64) *AgentMeasures {
	copied := make(map[string]Value, len(m.measures)+len(derived))
	for name, value := range m.measures {
		copied[name] = value
	}
	for name, value := range derived {
		copied[name] = value
	}
	return &AgentMeasures{agentType: m.agentType, measures: copied}
}
