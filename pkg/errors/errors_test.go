package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad width %d", -1)
	want := "INVALID_INPUT: bad width -1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeOutputOpen, cause, "open %s", "/tmp/out")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !Is(err, ErrCodeOutputOpen) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is should not match a different code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCache, "x")); got != ErrCodeCache {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeCache)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFlag, "width must be positive")
	if got := UserMessage(err); got != "width must be positive" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{New(ErrCodeInvalidInput, "x"), 2},
		{New(ErrCodeInvalidFlag, "x"), 2},
		{New(ErrCodeInvalidConfig, "x"), 2},
		{New(ErrCodeOutputOpen, "x"), 3},
		{New(ErrCodeInternal, "x"), 1},
		{fmt.Errorf("plain"), 1},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestValidateDimension(t *testing.T) {
	if err := ValidateDimension("width", 80); err != nil {
		t.Errorf("ValidateDimension(80) = %v, want nil", err)
	}
	if err := ValidateDimension("width", 0); !Is(err, ErrCodeInvalidFlag) {
		t.Errorf("ValidateDimension(0) = %v, want INVALID_FLAG", err)
	}
	if err := ValidateDimension("width", -3); !Is(err, ErrCodeInvalidFlag) {
		t.Errorf("ValidateDimension(-3) = %v, want INVALID_FLAG", err)
	}
	if err := ValidateDimension("width", 2_000_000_000); !Is(err, ErrCodeInvalidFlag) {
		t.Errorf("ValidateDimension(2e9) = %v, want INVALID_FLAG", err)
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/file.txt"); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := ValidateOutputPath("-"); err != nil {
		t.Errorf("stdout sentinel rejected: %v", err)
	}
	if err := ValidateOutputPath(""); !Is(err, ErrCodeInvalidFlag) {
		t.Errorf("empty path = %v, want INVALID_FLAG", err)
	}
	if err := ValidateOutputPath("a\x00b"); !Is(err, ErrCodeInvalidFlag) {
		t.Errorf("null byte path = %v, want INVALID_FLAG", err)
	}
}
