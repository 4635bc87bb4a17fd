package subproc

import (
	"syscall"
	"testing"
	"time"
)

func TestPolicyConstructors(t *testing.T) {
	t.Parallel()

	p := KillOnSilence(syscall.SIGINT, 2*time.Second)
	if p.Trigger != TriggerSilence || p.Signal != syscall.SIGINT || p.Interval != 2*time.Second {
		t.Fatalf("unexpected silence policy: %+v", p)
	}

	p = KillAfterRuntime(syscall.SIGTERM, time.Minute)
	if p.Trigger != TriggerRuntime || p.Signal != syscall.SIGTERM || p.Interval != time.Minute {
		t.Fatalf("unexpected runtime policy: %+v", p)
	}
}

func TestPolicyValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		policy Policy
		ok     bool
	}{
		{"sigint silence", Policy{Trigger: TriggerSilence, Signal: syscall.SIGINT, Interval: time.Second}, true},
		{"sigterm runtime", Policy{Trigger: TriggerRuntime, Signal: syscall.SIGTERM, Interval: time.Second}, true},
		{"sigkill rejected", Policy{Trigger: TriggerSilence, Signal: syscall.SIGKILL, Interval: time.Second}, false},
		{"zero interval", Policy{Trigger: TriggerSilence, Signal: syscall.SIGINT}, false},
		{"negative grace", Policy{Trigger: TriggerSilence, Signal: syscall.SIGINT, Interval: time.Second, Grace: -time.Second}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.validate()
			if tc.ok && err != nil {
				t.Fatalf("validate() = %v, want nil", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("validate() = nil, want error")
			}
		})
	}
}

func TestPolicyGraceDefault(t *testing.T) {
	t.Parallel()

	p := KillOnSilence(syscall.SIGTERM, time.Second)
	if p.grace() != DefaultGrace {
		t.Fatalf("grace() = %v, want %v", p.grace(), DefaultGrace)
	}
	p.Grace = 100 * time.Millisecond
	if p.grace() != 100*time.Millisecond {
		t.Fatalf("grace() = %v, want 100ms", p.grace())
	}
}

func TestPollIntervalClamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{1 * time.Millisecond, 200 * time.Microsecond},
		{5 * time.Millisecond, 500 * time.Microsecond},
		{50 * time.Millisecond, 5 * time.Millisecond},
		{10 * time.Second, 10 * time.Millisecond},
	}
	for _, tc := range cases {
		p := KillOnSilence(syscall.SIGTERM, tc.interval)
		if got := p.pollInterval(); got != tc.want {
			t.Errorf("pollInterval(%v) = %v, want %v", tc.interval, got, tc.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	if got := (Status{State: StateNotStarted}).String(); got != "not-started" {
		t.Errorf("String() = %q", got)
	}
	if got := (Status{State: StateRunning}).String(); got != "running" {
		t.Errorf("String() = %q", got)
	}
	if got := (Status{State: StateTerminated, ExitCode: 2}).String(); got != "terminated(2)" {
		t.Errorf("String() = %q", got)
	}
}
