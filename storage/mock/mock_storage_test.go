package mock

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/oauth2"

	"github.com/giantswarm/oauth-core/storage"
)

func TestMockTokenStorage_Defaults(t *testing.T) {
	m := NewMockTokenStorage()
	ctx := context.Background()

	if _, err := m.RetrieveAccessToken(ctx, "GitHub"); !errors.Is(err, storage.ErrTokenNotFound) {
		t.Errorf("RetrieveAccessToken() error = %v, want ErrTokenNotFound", err)
	}

	token := &oauth2.Token{AccessToken: "abc"}
	if err := m.StoreAccessToken(ctx, "GitHub", token); err != nil {
		t.Fatalf("StoreAccessToken() error = %v", err)
	}
	got, err := m.RetrieveAccessToken(ctx, "GitHub")
	if err != nil || got.AccessToken != "abc" {
		t.Errorf("RetrieveAccessToken() = %v, %v", got, err)
	}

	if _, err := m.RetrieveAuthorizationState(ctx, "GitHub"); !errors.Is(err, storage.ErrStateNotFound) {
		t.Errorf("RetrieveAuthorizationState() error = %v, want ErrStateNotFound", err)
	}
	_ = m.StoreAuthorizationState(ctx, "GitHub", "state")
	if has, _ := m.HasAuthorizationState(ctx, "GitHub"); !has {
		t.Error("HasAuthorizationState() = false after store")
	}

	_ = m.ClearAllTokens(ctx)
	_ = m.ClearAllAuthorizationStates(ctx)
	if has, _ := m.HasAccessToken(ctx, "GitHub"); has {
		t.Error("token survived ClearAllTokens")
	}
	if has, _ := m.HasAuthorizationState(ctx, "GitHub"); has {
		t.Error("state survived ClearAllAuthorizationStates")
	}
}

func TestMockTokenStorage_Hooks(t *testing.T) {
	m := NewMockTokenStorage()
	ctx := context.Background()

	wantErr := errors.New("backend down")
	m.StoreAccessTokenFunc = func(context.Context, string, *oauth2.Token) error {
		return wantErr
	}

	if err := m.StoreAccessToken(ctx, "GitHub", &oauth2.Token{}); !errors.Is(err, wantErr) {
		t.Errorf("StoreAccessToken() error = %v, want %v", err, wantErr)
	}
	if has, _ := m.HasAccessToken(ctx, "GitHub"); has {
		t.Error("hooked store should not persist the token")
	}
}

func TestMockTokenStorage_CallCounts(t *testing.T) {
	m := NewMockTokenStorage()
	ctx := context.Background()

	_, _ = m.HasAccessToken(ctx, "a")
	_, _ = m.HasAccessToken(ctx, "b")
	_ = m.ClearToken(ctx, "a")

	if got := m.CallCount("HasAccessToken"); got != 2 {
		t.Errorf("CallCount(HasAccessToken) = %d, want 2", got)
	}
	if got := m.CallCount("ClearToken"); got != 1 {
		t.Errorf("CallCount(ClearToken) = %d, want 1", got)
	}

	m.ResetCallCounts()
	if got := m.CallCount("HasAccessToken"); got != 0 {
		t.Errorf("CallCount after reset = %d, want 0", got)
	}
}
