package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	inner := IOError("read failed", stderrors.New("disk gone"))
	wrapped := Wrap(inner, "load stage failed")

	// the stage-boundary wrap must not lose the original code
	if GetCode(wrapped) != CodeIOError {
		t.Errorf("GetCode = %s, want %s", GetCode(wrapped), CodeIOError)
	}
	if !stderrors.Is(wrapped, inner) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("GetCode = %s, want %s", GetCode(wrapped), CodeInternalError)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestWrapfFormatsMessage(t *testing.T) {
	wrapped := Wrapf(ConfigInvalid("bad ratio"), "stage %s failed", "balance")
	if got := wrapped.Error(); got != "stage balance failed: bad ratio" {
		t.Errorf("Error() = %q", got)
	}
	if GetCode(wrapped) != CodeConfigInvalid {
		t.Errorf("GetCode = %s, want %s", GetCode(wrapped), CodeConfigInvalid)
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "UNKNOWN" {
		t.Errorf("GetCode = %s, want UNKNOWN", got)
	}
}
