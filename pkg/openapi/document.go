package openapi

import (
	_ "embed"
	"sync"
)

// GetMessageOperationID identifies the relay's get-message operation
const GetMessageOperationID = "Messages.Get"

//go:embed toastsms.json
var relayDocument []byte

var (
	relayOnce   sync.Once
	relayParser *Parser
	relayErr    error
)

// RelayDocument returns the relay's own OpenAPI document as served at /openapi.json
func RelayDocument() []byte {
	out := make([]byte, len(relayDocument))
	copy(out, relayDocument)
	return out
}

// LoadRelayDocument parses the embedded document once
func LoadRelayDocument() (*Parser, error) {
	relayOnce.Do(func() {
		p := NewParser()
		if err := p.LoadFromBytes(relayDocument); err != nil {
			relayErr = err
			return
		}
		relayParser = p
	})
	return relayParser, relayErr
}
