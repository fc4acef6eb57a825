package driver

import (
	"encoding/json"
	"fmt"

	"lattice/internal/diag"
	"lattice/internal/observ"
)

// timingPayload is the JSON carried in the note of an OBS5001 diagnostic.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func timingPayloadFrom(kind, path string, timer *observ.Timer) timingPayload {
	r := timer.Report()
	return timingPayload{Kind: kind, Path: path, TotalMS: r.TotalMS, Phases: r.Phases}
}

// appendTimingDiagnostic always lands in bag, even a full one.
func appendTimingDiagnostic(bag *diag.Bag, p timingPayload) {
	if bag == nil {
		return
	}
	if p.Kind == "" {
		p.Kind = "pipeline"
	}
	note, err := json.Marshal(p)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", p.Kind, p.TotalMS)
	if p.Path != "" {
		msg += ": " + p.Path
	}

	one := diag.NewBag(1)
	one.Add(diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Notes:    []diag.Note{{Msg: string(note)}},
	})
	bag.Merge(one)
}
