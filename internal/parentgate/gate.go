package parentgate

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"screenclash/internal/security"
)

// ErrWrongAnswer is returned when a challenge answer or passcode does
// not match. The current challenge is kept so the caller retries the
// same problem.
var ErrWrongAnswer = errors.New("wrong answer")

// Challenge is a multiplication problem shown to prove an adult is
// present. Operands are chosen outside the times tables a child drills.
type Challenge struct {
	Num1 int `json:"num1"`
	Num2 int `json:"num2"`
}

// Gate verifies parental presence before the settings routes open. A
// parent passes either by passcode or by solving the multiplication
// challenge; both paths issue the same short-lived unlock token.
type Gate struct {
	mu sync.Mutex

	passcodeHash string
	tokenKey     []byte
	tokenTTL     time.Duration
	rng          *rand.Rand

	// challenges holds the pending problem per client, keyed by the
	// profile or device identifier the client supplies
	challenges map[string]Challenge
}

// New creates a parental gate. passcodeHash is a bcrypt hash; an empty
// hash disables the passcode path.
func New(passcodeHash string, tokenKey []byte, tokenTTL time.Duration) *Gate {
	return &Gate{
		passcodeHash: passcodeHash,
		tokenKey:     tokenKey,
		tokenTTL:     tokenTTL,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		challenges:   make(map[string]Challenge),
	}
}

// NewChallenge issues a multiplication problem for a client. A pending
// challenge for the same client is replaced.
func (g *Gate) NewChallenge(clientID string) Challenge {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := Challenge{
		Num1: 12 + g.rng.Intn(8), // 12..19
		Num2: 3 + g.rng.Intn(7),  // 3..9
	}
	g.challenges[clientID] = c
	return c
}

// SolveChallenge checks an answer against the client's pending
// challenge. A correct answer consumes the challenge and returns an
// unlock token; a wrong answer keeps the same problem.
func (g *Gate) SolveChallenge(clientID string, answer int) (string, error) {
	g.mu.Lock()
	c, ok := g.challenges[clientID]
	if ok && answer == c.Num1*c.Num2 {
		delete(g.challenges, clientID)
		g.mu.Unlock()
		return g.issueToken(clientID)
	}
	g.mu.Unlock()
	return "", ErrWrongAnswer
}

// VerifyPasscode checks the parent passcode and returns an unlock
// token on success.
func (g *Gate) VerifyPasscode(clientID, passcode string) (string, error) {
	if g.passcodeHash == "" || !security.CheckPassword(passcode, g.passcodeHash) {
		return "", ErrWrongAnswer
	}
	return g.issueToken(clientID)
}

// ValidateToken checks an unlock token issued by this gate
func (g *Gate) ValidateToken(token string) error {
	_, err := security.ValidateUnlockToken(g.tokenKey, token)
	return err
}

func (g *Gate) issueToken(clientID string) (string, error) {
	return security.GenerateUnlockToken(g.tokenKey, clientID, g.tokenTTL)
}
