package crowd

import (
	"fmt"

	"github.com/crowd-dynamics/crowdsynth/internal/anthro"
	"github.com/crowd-dynamics/crowdsynth/internal/schema"
)

// Dataset column names, as they appear in the baseline anthropometric table.
const (
	ColSex              = "sex"
	ColBideltoidBreadth = "bideltoid breadth [cm]"
	ColChestDepth       = "chest depth [cm]"
	ColHeight           = "height [cm]"
	ColWeight           = "weight [kg]"
	ColWheelWidth       = "wheel width [cm]"
	ColTotalLength      = "total length [cm]"
	ColHandlebarLength  = "handlebar length [cm]"
	ColTopTubeLength    = "top tube length [cm]"
)

// PedestrianFromRow builds a pedestrian measure set from one named dataset
// row instead of a random draw. The sex comes separately because dataset
// rows only carry numeric columns.
func PedestrianFromRow(sex schema.Sex, row anthro.Row) (*AgentMeasures, error) {
	columns := map[string]string{
		schema.MeasureBideltoidBreadth: ColBideltoidBreadth,
		schema.MeasureChestDepth:       ColChestDepth,
		schema.MeasureHeight:           ColHeight,
		schema.MeasureWeight:           ColWeight,
	}
	measures := map[string]Value{schema.MeasureSex: sex}
	if err := copyColumns(row, columns, measures); err != nil {
		return nil, err
	}
	return NewAgentMeasures(schema.Pedestrian, measures)
}

// BikeFromRow builds a bike measure set from one named dataset row.
func BikeFromRow(row anthro.Row) (*AgentMeasures, error) {
	columns := map[string]string{
		schema.MeasureWheelWidth:      ColWheelWidth,
		schema.MeasureTotalLength:     ColTotalLength,
		schema.MeasureHandlebarLength: ColHandlebarLength,
		schema.MeasureTopTubeLength:   ColTopTubeLength,
		schema.MeasureWeight:          ColWeight,
	}
	measures := make(map[string]Value)
	if err := copyColumns(row, columns, measures); err != nil {
		return nil, err
	}
	return NewAgentMeasures(schema.Bike, measures)
}

// copyColumns maps dataset columns onto measure names, failing on any
// missing column so a bad row never yields a partial measure set.
func copyColumns(row anthro.Row, columns map[string]string, out map[string]Value) error {
	for measure, column := range columns {
		value, ok := row[column]
		if !ok {
			return fmt.Errorf("%w: dataset row has no column %q", ErrSchemaViolation, column)
		}
		out[measure] = value
	}
	return nil
}
