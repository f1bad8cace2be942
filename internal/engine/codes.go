package engine

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/game-economy/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCodes produces total unique code tokens, each the prefix plus
// a random uppercase-alphanumeric suffix. Uniqueness holds within the
// batch and against every code already in the store; collisions are
// regenerated, with an attempt cap in case the suffix space runs out.
func (e *Engine) generateCodes(prefix string, total int) ([]domain.GiftCode, error) {
	suffixLen := e.codes.SuffixLength
	seen := make(map[string]struct{}, total)
	codes := make([]domain.GiftCode, 0, total)

	attempts := 0
	maxAttempts := total*100 + 100
	for len(codes) < total {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("code space exhausted for prefix %q after %d attempts", prefix, attempts)
		}
		attempts++

		token, err := randomToken(prefix, suffixLen)
		if err != nil {
			return nil, fmt.Errorf("generating code: %w", err)
		}
		if _, dup := seen[token]; dup || e.store.CodeExists(token) {
			continue
		}
		seen[token] = struct{}{}
		codes = append(codes, domain.GiftCode{Code: token})
	}
	return codes, nil
}

func randomToken(prefix string, suffixLen int) (string, error) {
	buf := make([]byte, suffixLen)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return prefix + string(buf), nil
}
