package state

import (
	"errors"
	"testing"

	"github.com/faasm/faasm-go-sdk/hostmock"
)

func TestWithWriteLock(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	tt := []struct {
		name    string
		fn      func(*Client) error
		wantErr error
	}{
		{
			name: "read modify write",
			fn: func(c *Client) error {
				return c.WriteWithPadding("k", []byte("1"), 16)
			},
		},
		{
			name:    "callback error still releases",
			fn:      func(*Client) error { return boom },
			wantErr: boom,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, h := newClient(t, hostmock.HostConfig{})

			err := WithWriteLock(c, "k", func() error {
				if writer, _ := h.Locked("k"); !writer {
					t.Errorf("expected write lock to be held inside callback")
				}
				return tc.fn(c)
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v, got %v", tc.wantErr, err)
			}
			if writer, _ := h.Locked("k"); writer {
				t.Fatalf("expected write lock to be released")
			}
			if h.Count(hostmock.OpLockWrite) != 1 || h.Count(hostmock.OpUnlockWrite) != 1 {
				t.Fatalf("expected one lock and one unlock, got %+v", h.Calls())
			}
		})
	}
}

func TestWithWriteLockPanicReleases(t *testing.T) {
	t.Parallel()

	c, h := newClient(t, hostmock.HostConfig{})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = WithWriteLock(c, "k", func() error { panic("boom") })
	}()

	if writer, _ := h.Locked("k"); writer {
		t.Fatalf("expected write lock to be released after panic")
	}
}

func TestWithWriteLockAcquireFailure(t *testing.T) {
	t.Parallel()

	c, h := newClient(t, hostmock.HostConfig{
		Errors: map[string]error{hostmock.OpLockWrite: hostmock.ErrOperationFailed},
	})

	called := false
	err := WithWriteLock(c, "k", func() error { called = true; return nil })
	if !errors.Is(err, hostmock.ErrOperationFailed) {
		t.Fatalf("expected ErrOperationFailed, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run without the lock")
	}
	if got := h.Count(hostmock.OpUnlockWrite); got != 0 {
		t.Fatalf("expected no unlock after failed acquire, got %d", got)
	}
}

func TestWithReadLockJoinsReleaseError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c, _ := newClient(t, hostmock.HostConfig{
		Errors: map[string]error{hostmock.OpUnlockRead: hostmock.ErrOperationFailed},
	})

	err := WithReadLock(c, "k", func() error { return boom })
	if !errors.Is(err, boom) || !errors.Is(err, hostmock.ErrOperationFailed) {
		t.Fatalf("expected callback and release errors, got %v", err)
	}
}
