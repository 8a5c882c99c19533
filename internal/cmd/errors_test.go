package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestSilentExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"zero code", 0, "exit 0"},
		{"failure code", 1, "exit 1"},
		{"custom code", 42, "exit 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &SilentExitError{Code: tt.code}
			if got := e.Error(); got != tt.want {
				t.Errorf("SilentExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSilentExit(t *testing.T) {
	for _, code := range []int{0, 1, 2, 127} {
		t.Run(fmt.Sprintf("code_%d", code), func(t *testing.T) {
			err := NewSilentExit(code)
			if err == nil {
				t.Fatal("NewSilentExit should return non-nil")
			}
			if err.Code != code {
				t.Errorf("NewSilentExit(%d).Code = %d", code, err.Code)
			}
		})
	}
}

func TestIsSilentExit(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantIsSilent bool
	}{
		{"nil error", nil, 0, false},
		{"silent exit code 0", NewSilentExit(0), 0, true},
		{"silent exit code 1", NewSilentExit(1), 1, true},
		{"other error", errors.New("some error"), 0, false},
		{"wrapped silent exit", fmt.Errorf("wrapped: %w", NewSilentExit(5)), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, isSilent := IsSilentExit(tt.err)
			if isSilent != tt.wantIsSilent {
				t.Errorf("IsSilentExit(%v) isSilent = %v, want %v", tt.err, isSilent, tt.wantIsSilent)
			}
			if code != tt.wantCode {
				t.Errorf("IsSilentExit(%v) code = %d, want %d", tt.err, code, tt.wantCode)
			}
		})
	}
}
