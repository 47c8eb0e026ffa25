package calculator

// CalcRequest is the JSON body for single operations.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for single operations.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // built-in or registered operation name
	Value float64 `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"` // starting value
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// OperationsResponse lists every operation the calculator accepts.
type OperationsResponse struct {
	Operations []string `json:"operations"`
}

// SessionRequest is the JSON body for POST /calculator/sessions.
type SessionRequest struct {
	Initial float64 `json:"initial"`
}

// SessionResponse describes a session and its current value.
type SessionResponse struct {
	ID     string  `json:"id"`
	Result float64 `json:"result"`
}
