package engine

import "github.com/google/uuid"

// IDGenerator generates request ids.
// Implemented by TokenGenerator (production) and a fixed generator in tests.
type IDGenerator interface {
	Generate() string
}

// TokenGenerator produces short unique tokens from random UUIDs.
// Eight hex characters keep ids typeable in chat commands while staying
// unique within the store's TTL horizon.
type TokenGenerator struct{}

// Generate returns a new short token.
func (TokenGenerator) Generate() string {
	return uuid.NewString()[:8]
}
