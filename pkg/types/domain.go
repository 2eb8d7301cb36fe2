package types

// ModelSpec is the structured input used to derive a launch entry. It is
// never persisted as-is: the synthesized command string is what ends up in
// the swap config, so re-editing an entry requires resubmitting a full spec.
type ModelSpec struct {
	Name           string   `json:"name"`
	FilePath       string   `json:"file_path"`
	GPULayers      int      `json:"ngl"`
	ContextSize    int      `json:"ctx"`
	BatchSize      int      `json:"batch"`
	Threads        int      `json:"threads,omitempty"`
	Temperature    float64  `json:"temp"`
	TopP           float64  `json:"top_p"`
	TopK           int      `json:"top_k"`
	RepeatPenalty  float64  `json:"repeat_penalty"`
	MicroBatchSize int      `json:"ubatch"`
	LockMemory     bool     `json:"mlock"`
	NUMAPolicy     string   `json:"numa,omitempty"`
	FlashAttention bool     `json:"flash_attn"`
	Aliases        []string `json:"aliases,omitempty"`
	AdvancedArgs   string   `json:"advanced,omitempty"`
}

// DefaultModelSpec returns a spec pre-filled with the defaults applied when a
// request body omits a field. Decode request JSON into this value so explicit
// zeroes from the client survive.
func DefaultModelSpec() ModelSpec {
	return ModelSpec{
		GPULayers:      99,
		ContextSize:    4096,
		BatchSize:      2048,
		Temperature:    0.7,
		TopP:           0.95,
		TopK:           40,
		RepeatPenalty:  1.10,
		MicroBatchSize: 512,
	}
}

// LaunchEntry is the persisted derivation of a ModelSpec: one entry in the
// swap service's models mapping.
type LaunchEntry struct {
	Cmd     string   `json:"cmd" yaml:"cmd"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// ActiveModel describes one model reported by the swap service's
// OpenAI-compatible /v1/models listing.
type ActiveModel struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}
