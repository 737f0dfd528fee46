package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	defaultCodeLength = 6
	maxAllocateTries  = 8
)

// Generator produces short codes usable as new Link primary keys.
// Codes are not cryptographically random; collisions are handled by retry
// against the store.
type Generator struct {
	store Store
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store}
}

func randomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// fallbackCode derives a code from the current time in base36 plus a short
// random suffix, truncated to the default length.
func fallbackCode() string {
	s := strconv.FormatInt(time.Now().UnixMilli(), 36) + randomCode(2)
	return s[:defaultCodeLength]
}

// AllocateUniqueCode draws random candidates and checks each against the
// store, returning the first unused one. After maxAllocateTries collisions it
// falls back to a time-derived code; the fallback is checked against the
// store as well, so an occupied fallback surfaces as ErrConflict instead of
// silently overwriting anything.
func (g *Generator) AllocateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxAllocateTries; i++ {
		code := randomCode(defaultCodeLength)
		exists, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	code := fallbackCode()
	exists, err := g.store.CodeExists(ctx, code)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("allocate code: %w", ErrConflict)
	}
	return code, nil
}
