package gemini

// Part is a single piece of content, text-only for this service.
type Part struct {
	Text string `json:"text"`
}

// Content is a role-attributed list of parts, as the generative-language API
// expects in both requests and responses.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// generateRequest is the body of a generateContent call.
type generateRequest struct {
	SystemInstruction *Content         `json:"system_instruction,omitempty"`
	Contents          []Content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// errorResponse is the upstream error envelope. Parse failures are tolerated
// by leaving the struct zero-valued.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
