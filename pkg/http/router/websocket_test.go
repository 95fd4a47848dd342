package router

import (
	"errors"
	"testing"

	"github.com/baguioroutes/roadadvisor/pkg/concurrent"
)

type timeoutNetError struct {
	timeout bool
}

func (e timeoutNetError) Error() string   { return "accept deadline" }
func (e timeoutNetError) Timeout() bool   { return e.timeout }
func (e timeoutNetError) Temporary() bool { return e.timeout }

func TestRetryAcceptDelay(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{
			name:      "saturated pool cools down, never fatal",
			err:       concurrent.ErrScheduleTimeout,
			wantRetry: true,
		},
		{
			name:      "net timeout cools down",
			err:       timeoutNetError{timeout: true},
			wantRetry: true,
		},
		{
			name:      "net error without timeout is unrecoverable",
			err:       timeoutNetError{timeout: false},
			wantRetry: false,
		},
		{
			name:      "plain accept error is unrecoverable",
			err:       errors.New("listener closed"),
			wantRetry: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			delay, retry := retryAcceptDelay(tt.err)
			if retry != tt.wantRetry {
				t.Fatalf("retry = %v, want %v", retry, tt.wantRetry)
			}
			if retry && delay <= 0 {
				t.Error("retryable error should carry a positive cooldown")
			}
		})
	}
}
