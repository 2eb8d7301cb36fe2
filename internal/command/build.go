// Package command turns a structured model spec into the flat llama-server
// launch string the swap service expects in its config.
package command

import (
	"strconv"
	"strings"

	"swapman/pkg/types"
)

// serverBinary is the path baked into the swap service's container image.
const serverBinary = "/app/llama-server"

// Build synthesizes the launch command for a model spec. It is total: any
// structurally valid spec yields a command. Values are joined verbatim with
// no quoting; numaPolicy and advancedArgs are trusted operator input and pass
// straight through to the command line.
func Build(spec types.ModelSpec) string {
	parts := []string{
		serverBinary,
		"-m " + spec.FilePath,
		"-ngl " + strconv.Itoa(spec.GPULayers),
		"-c " + strconv.Itoa(spec.ContextSize),
		"-b " + strconv.Itoa(spec.BatchSize),
	}

	if spec.Threads > 0 {
		parts = append(parts, "-t "+strconv.Itoa(spec.Threads))
	}

	parts = append(parts,
		"-ub "+strconv.Itoa(spec.MicroBatchSize),
		"--temp "+formatFloat(spec.Temperature),
		"--top-p "+formatFloat(spec.TopP),
		"--top-k "+strconv.Itoa(spec.TopK),
		"--repeat-penalty "+formatFloat(spec.RepeatPenalty),
	)

	if spec.LockMemory {
		parts = append(parts, "--mlock")
	}
	if spec.NUMAPolicy != "" {
		parts = append(parts, spec.NUMAPolicy)
	}
	if spec.FlashAttention {
		parts = append(parts, "--flash-attn")
	}
	if spec.AdvancedArgs != "" {
		if trimmed := strings.TrimSpace(spec.AdvancedArgs); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	// The port placeholder is resolved by the swap service at launch time.
	parts = append(parts, "--port ${PORT}", "--host 0.0.0.0")

	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
