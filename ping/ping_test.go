package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	plain := errors.New("wire fell out")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"Nil passes through", nil, nil},
		{"DNS failure", &net.DNSError{Name: "nope.invalid", Err: "no such host"}, ErrResolution},
		{"Wrapped DNS failure", fmt.Errorf("lookup: %w", &net.DNSError{Name: "x"}), ErrResolution},
		{"EPERM", fmt.Errorf("socket: %w", syscall.EPERM), ErrPermission},
		{"EACCES", &os.SyscallError{Syscall: "socket", Err: syscall.EACCES}, ErrPermission},
		{"os.ErrPermission", os.ErrPermission, ErrPermission},
		{"Context deadline", context.DeadlineExceeded, ErrTimeout},
		{"IO deadline", os.ErrDeadlineExceeded, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("Expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("Expected %v classification, got %v", tt.want, got)
			}
		})
	}

	t.Run("Unknown errors pass through", func(t *testing.T) {
		got := Classify(plain)
		if !errors.Is(got, plain) {
			t.Errorf("Expected unclassified error unchanged, got %v", got)
		}
		for _, sentinel := range []error{ErrResolution, ErrTimeout, ErrPermission} {
			if errors.Is(got, sentinel) {
				t.Errorf("Expected no %v classification for plain error", sentinel)
			}
		}
	})
}

func TestResultOK(t *testing.T) {
	ok := Result{RTT: 5 * time.Millisecond, TTL: 57}
	if !ok.OK() {
		t.Error("Expected result without error to be OK")
	}

	failed := Result{Err: ErrTimeout}
	if failed.OK() {
		t.Error("Expected result with error to not be OK")
	}
}

func TestNewProberDefaults(t *testing.T) {
	p := NewProber()
	if p.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, p.Timeout)
	}
	if p.Privileged {
		t.Error("Expected unprivileged default")
	}
}

func TestResolveRejectsBogusHost(t *testing.T) {
	_, err := Resolve("definitely-not-a-host.invalid")
	if err == nil {
		t.Skip("resolver wildcards unresolvable names")
	}
	if !errors.Is(err, ErrResolution) {
		t.Errorf("Expected resolution error, got %v", err)
	}
}
