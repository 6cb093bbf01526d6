package goCSRF

import (
	"fmt"

	"github.com/dualtoken/goCSRF/internal"
	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier for one token pair. The engine
// treats the result as opaque and never validates its shape; any byte
// string, including invalid UTF-8, comes back from Verify unchanged.
type IDGenerator func() string

// IDStrategy names a built-in IDGenerator.
type IDStrategy string

const (
	// IDStrategySimple yields "<time>_<random>" identifiers; always contains "_".
	IDStrategySimple IDStrategy = "simple"
	// IDStrategyUUID yields RFC 4122 version 4 UUIDs; always contains "-".
	IDStrategyUUID IDStrategy = "uuid"
)

// SimpleID is the IDStrategySimple generator.
func SimpleID() string {
	id, err := internal.NewSimpleID()
	if err != nil {
		// crypto/rand failing leaves no safe identifier to hand out.
		panic(fmt.Sprintf("goCSRF: simple id generation failed: %v", err))
	}
	return id
}

// UUID is the IDStrategyUUID generator.
func UUID() string {
	return uuid.NewString()
}

func resolveIDGenerator(custom IDGenerator, strategy IDStrategy) (IDGenerator, error) {
	if custom != nil {
		return custom, nil
	}
	switch strategy {
	case "", IDStrategyUUID:
		return UUID, nil
	case IDStrategySimple:
		return SimpleID, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIDStrategy, strategy)
	}
}
