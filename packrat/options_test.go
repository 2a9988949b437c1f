package packrat

import (
	"testing"

	"github.com/glebzlat/polygen/charsource"
	"github.com/sirupsen/logrus"
)

func TestWithLoggerTracesApply(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	e := New(charsource.NewString("a"), WithLogger(log))
	_, ok := e.ApplyPlain("A", func() (any, bool) {
		return e.ExpectRune('a', false)
	})
	if !ok {
		t.Fatalf("expected rule to match")
	}
}

func TestWithRecoverTurnsPanicIntoFailure(t *testing.T) {
	e := New(charsource.NewString("a"), WithRecover())
	value, ok := e.ApplyPlain("Boom", func() (any, bool) {
		panic("meta-action exploded")
	})
	if ok {
		t.Fatalf("expected a recovered panic to report failure")
	}
	if value != nil {
		t.Fatalf("expected nil value after recovered panic, got %v", value)
	}
}

func TestWithoutRecoverPanicPropagates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected the panic to propagate without WithRecover")
		}
	}()
	e := New(charsource.NewString("a"))
	e.ApplyPlain("Boom", func() (any, bool) {
		panic("meta-action exploded")
	})
}
