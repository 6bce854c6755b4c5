package pugrest

import (
	"bytes"
	"encoding/json"
)

// Fault is the error envelope PUG REST embeds in non-2xx response
// bodies. Details, when present, carries human-readable context beyond
// the generic message.
type Fault struct {
	Code    string   `json:"Code"`
	Message string   `json:"Message"`
	Details []string `json:"Details"`
}

// ExtractFault parses body for a {"Fault": ...} envelope. The second
// return value reports whether one was found; bodies that are empty,
// not JSON, or JSON without a fault yield false.
func ExtractFault(body []byte) (Fault, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Fault{}, false
	}

	var envelope struct {
		Fault *Fault `json:"Fault"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Fault == nil {
		return Fault{}, false
	}
	if envelope.Fault.Code == "" && envelope.Fault.Message == "" {
		return Fault{}, false
	}
	return *envelope.Fault, true
}

// FullMessage joins the fault message with its first detail line, the
// way the service intends the fault to be read.
func (f Fault) FullMessage() string {
	if len(f.Details) > 0 && f.Details[0] != "" {
		if f.Message == "" {
			return f.Details[0]
		}
		return f.Message + ": " + f.Details[0]
	}
	return f.Message
}

// ExtractListKey returns the asynchronous job token from a
// {"Waiting":{"ListKey": ...}} envelope, produced when the service
// queues a slow search instead of answering immediately.
func ExtractListKey(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", false
	}

	var envelope struct {
		Waiting *struct {
			ListKey string `json:"ListKey"`
		} `json:"Waiting"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Waiting == nil {
		return "", false
	}
	if envelope.Waiting.ListKey == "" {
		return "", false
	}
	return envelope.Waiting.ListKey, true
}
