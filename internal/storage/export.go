package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/datawolf04/physlab/internal/dynamo"
)

type ExportData struct {
	Experiment string             `json:"experiment"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Completed  bool               `json:"completed"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExport(experiment, integrator string, dt, duration float64, result *dynamo.Result) ExportData {
	data := ExportData{
		Experiment: experiment,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Completed:  result.Completed,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

func ExportJSON(path, experiment, integrator string, dt, duration float64, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, experiment, integrator, dt, duration, result)
}

func ExportJSONStdout(experiment, integrator string, dt, duration float64, result *dynamo.Result) error {
	return writeExport(os.Stdout, experiment, integrator, dt, duration, result)
}

func writeExport(w io.Writer, experiment, integrator string, dt, duration float64, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(experiment, integrator, dt, duration, result))
}
