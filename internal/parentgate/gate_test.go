package parentgate

import (
	"testing"
	"time"

	"screenclash/internal/security"
)

func newTestGate(t *testing.T, passcode string) *Gate {
	t.Helper()
	hash := ""
	if passcode != "" {
		var err error
		hash, err = security.HashPassword(passcode)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
	}
	return New(hash, []byte("test-key"), 5*time.Minute)
}

func TestChallengeOperandRanges(t *testing.T) {
	g := newTestGate(t, "")

	for i := 0; i < 50; i++ {
		c := g.NewChallenge("tablet-1")
		if c.Num1 < 12 || c.Num1 > 19 {
			t.Fatalf("num1 = %d, want 12..19", c.Num1)
		}
		if c.Num2 < 3 || c.Num2 > 9 {
			t.Fatalf("num2 = %d, want 3..9", c.Num2)
		}
	}
}

func TestSolveChallengeIssuesToken(t *testing.T) {
	g := newTestGate(t, "")

	c := g.NewChallenge("tablet-1")
	token, err := g.SolveChallenge("tablet-1", c.Num1*c.Num2)
	if err != nil {
		t.Fatalf("SolveChallenge: %v", err)
	}
	if token == "" {
		t.Fatal("expected an unlock token")
	}
	if err := g.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken: %v", err)
	}

	// Challenge is consumed: the same answer no longer works
	if _, err := g.SolveChallenge("tablet-1", c.Num1*c.Num2); err != ErrWrongAnswer {
		t.Errorf("reused challenge = %v, want ErrWrongAnswer", err)
	}
}

func TestWrongAnswerKeepsSameChallenge(t *testing.T) {
	g := newTestGate(t, "")

	c := g.NewChallenge("tablet-1")
	if _, err := g.SolveChallenge("tablet-1", -1); err != ErrWrongAnswer {
		t.Fatalf("wrong answer = %v, want ErrWrongAnswer", err)
	}

	// The pending problem is unchanged; the right answer still passes
	if _, err := g.SolveChallenge("tablet-1", c.Num1*c.Num2); err != nil {
		t.Errorf("correct answer after a miss = %v", err)
	}
}

func TestVerifyPasscode(t *testing.T) {
	g := newTestGate(t, "1234")

	token, err := g.VerifyPasscode("tablet-1", "1234")
	if err != nil {
		t.Fatalf("VerifyPasscode: %v", err)
	}
	if err := g.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken: %v", err)
	}

	if _, err := g.VerifyPasscode("tablet-1", "0000"); err != ErrWrongAnswer {
		t.Errorf("wrong passcode = %v, want ErrWrongAnswer", err)
	}
}

func TestPasscodeDisabledWhenUnset(t *testing.T) {
	g := newTestGate(t, "")
	if _, err := g.VerifyPasscode("tablet-1", "anything"); err != ErrWrongAnswer {
		t.Errorf("passcode with no hash = %v, want ErrWrongAnswer", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	g := newTestGate(t, "")
	if err := g.ValidateToken("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestAlertAutoClears(t *testing.T) {
	a := NewAlert(30 * time.Millisecond)

	a.Raise("emma")
	if !a.IsActive("emma") {
		t.Fatal("alert should be active after raise")
	}

	time.Sleep(60 * time.Millisecond)
	if a.IsActive("emma") {
		t.Error("alert should auto-clear after its duration")
	}
}

func TestAlertAcknowledgeClearsEarly(t *testing.T) {
	a := NewAlert(1 * time.Hour)

	a.Raise("emma")
	a.Acknowledge("emma")
	if a.IsActive("emma") {
		t.Error("acknowledged alert should be cleared")
	}
}

func TestAlertIsPerProfile(t *testing.T) {
	a := NewAlert(1 * time.Hour)

	a.Raise("emma")
	if a.IsActive("lucas") {
		t.Error("alert for one profile must not leak to another")
	}
}
