package security

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewAuditor(t *testing.T) {
	auditor := NewAuditor(nil, true)
	if auditor == nil {
		t.Fatal("NewAuditor() returned nil")
	}
	if auditor.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
}

func TestAuditor_LogEvent(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		log     func(a *Auditor)
		want    []string
	}{
		{
			name:    "degraded random",
			enabled: true,
			log:     func(a *Auditor) { a.LogDegradedRandom("GitHub") },
			want:    []string{"event_type=" + EventDegradedRandom, "service=GitHub", "client_id_hash=<empty>"},
		},
		{
			name:    "token stored",
			enabled: true,
			log:     func(a *Auditor) { a.LogTokenStored("GitHub", true) },
			want:    []string{"event_type=" + EventTokenStored, "encrypted:true"},
		},
		{
			name:    "token cleared",
			enabled: true,
			log:     func(a *Auditor) { a.LogTokenCleared("Google") },
			want:    []string{"event_type=" + EventTokenCleared, "service=Google"},
		},
		{
			name:    "all tokens cleared",
			enabled: true,
			log:     func(a *Auditor) { a.LogAllTokensCleared(3) },
			want:    []string{"event_type=" + EventAllTokensCleared, "count:3"},
		},
		{
			name:    "decryption failed",
			enabled: true,
			log:     func(a *Auditor) { a.LogTokenDecryptionFailed("Twitter") },
			want:    []string{"event_type=" + EventTokenDecryptionFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := NewAuditor(slog.New(slog.NewTextHandler(&buf, nil)), tt.enabled)
			tt.log(a)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("log output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestAuditor_Disabled(t *testing.T) {
	var buf bytes.Buffer
	a := NewAuditor(slog.New(slog.NewTextHandler(&buf, nil)), false)
	a.LogTokenStored("GitHub", false)

	if buf.Len() != 0 {
		t.Errorf("disabled auditor logged: %s", buf.String())
	}
}

func TestAuditor_NilSafe(t *testing.T) {
	var a *Auditor
	a.LogTokenCleared("GitHub") // must not panic
}

func TestAuditor_HashesClientID(t *testing.T) {
	var buf bytes.Buffer
	a := NewAuditor(slog.New(slog.NewTextHandler(&buf, nil)), true)
	a.LogEvent(Event{Type: EventTokenStored, Service: "GitHub", ClientID: "very-identifiable-client"})

	if strings.Contains(buf.String(), "very-identifiable-client") {
		t.Errorf("client ID logged in clear: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "client_id_hash="+hashForLogging("very-identifiable-client")) {
		t.Errorf("client ID hash missing: %s", buf.String())
	}
}

func TestHashForLogging(t *testing.T) {
	if got := hashForLogging(""); got != "<empty>" {
		t.Errorf("hashForLogging(\"\") = %q", got)
	}

	h1 := hashForLogging("client")
	h2 := hashForLogging("client")
	if h1 != h2 {
		t.Error("hashForLogging should be deterministic")
	}
	if len(h1) != 16 {
		t.Errorf("len(hashForLogging()) = %d, want 16", len(h1))
	}
}
