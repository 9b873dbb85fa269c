// Command agentgen synthesizes a crowd of agents from population statistics
// and writes one JSON record per agent.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/crowd-dynamics/crowdsynth/internal/anthro"
	"github.com/crowd-dynamics/crowdsynth/internal/config"
	"github.com/crowd-dynamics/crowdsynth/internal/crowd"
	"github.com/crowd-dynamics/crowdsynth/internal/sampling"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// agentRecord is one line of output.
type agentRecord struct {
	AgentID   string                 `json:"agent_id"`
	AgentType schema.AgentType       `json:"agent_type"`
	Measures  map[string]interface{} `json:"measures"`
}

func main() {
	configPath := flag.String("config", "", "crowd statistics JSON config (defaults used when empty)")
	dbPath := flag.String("db", "", "baseline anthropometric sqlite dataset (optional)")
	count := flag.Int("n", 10, "number of agents to draw")
	seed := flag.Uint64("seed", 0, "random seed (0 = unseeded)")
	agentType := flag.String("type", "auto", "agent type: auto, pedestrian or bike")
	output := flag.String("o", "", "output path (default stdout)")
	flag.Parse()

	stats := config.DefaultStatistics()
	var cfg *config.CrowdConfig
	if *configPath != "" {
		var err error
		cfg, err = config.LoadCrowdConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		stats = cfg.EffectiveStatistics()
	}

	if cfg != nil && cfg.Seed != nil && *seed == 0 {
		*seed = *cfg.Seed
	}
	sampler := sampling.New(nil)
	if *seed != 0 {
		sampler = sampling.NewSeeded(*seed)
	}

	var baseline anthro.Source
	path := *dbPath
	if path == "" && cfg != nil && cfg.DatabasePath != nil {
		path = *cfg.DatabasePath
	}
	if path != "" {
		baseline = anthro.PathSource{Loader: anthro.NewCachedLoader(0), Path: path}
	}

	cm, err := crowd.NewCrowdMeasures(baseline, nil, stats)
	if err != nil {
		log.Fatalf("build crowd store: %v", err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	synth := crowd.NewSynthesizer(sampler)
	enc := json.NewEncoder(out)
	weights := make([]float64, 0, *count)
	for i := 0; i < *count; i++ {
		t := schema.AgentType(*agentType)
		if *agentType == "auto" {
			t, err = synth.DrawAgentType(cm)
			if err != nil {
				log.Fatalf("draw agent type: %v", err)
			}
		}

		agent, err := synth.Draw(t, cm)
		if err != nil {
			log.Fatalf("draw agent %d: %v", i, err)
		}

		if w, err := agent.Float(schema.MeasureWeight); err == nil {
			weights = append(weights, w)
		}

		if err := enc.Encode(agentRecord{
			AgentID:   uuid.New().String(),
			AgentType: agent.AgentType(),
			Measures:  printableMeasures(agent),
		}); err != nil {
			log.Fatalf("encode agent %d: %v", i, err)
		}
	}

	if len(weights) > 0 {
		log.Printf("drew %d agents (weight mean %.1f kg, std dev %.1f kg)",
			*count, stat.Mean(weights, nil), stat.StdDev(weights, nil))
	}
}

// printableMeasures flattens a measure set for JSON output.
func printableMeasures(agent *crowd.AgentMeasures) map[string]interface{} {
	out := make(map[string]interface{})
	for name, value := range agent.Measures() {
		switch v := value.(type) {
		case schema.Sex:
			out[name] = string(v)
		case float64:
			out[name] = v
		default:
			out[name] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
