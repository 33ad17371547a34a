// team/code.go
package team

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Join codes avoid visually ambiguous characters (no I, O, 0, 1).
const (
	codeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength      = 6
	maxCodeAttempts = 10
)

type codeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// generateUniqueCode draws random codes until one is unused, retrying up to
// maxCodeAttempts. As a last resort it derives a code from the current Unix
// timestamp; that value is near-certainly unique but not guaranteed, which is
// an accepted residual risk of the protocol.
func generateUniqueCode(ctx context.Context, checker codeChecker) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode()
		exists, err := checker.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	ts := fmt.Sprintf("%d", time.Now().Unix())
	if len(ts) > codeLength {
		ts = ts[len(ts)-codeLength:]
	}
	return strings.ToUpper(ts), nil
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
