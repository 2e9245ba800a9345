package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeLookup struct {
	accounts map[int64]*Identity
	err      error
}

func (f *fakeLookup) FindAccountByID(ctx context.Context, id int64) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts[id], nil
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	}
	return r
}

func TestResolve_Success(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), time.Hour)
	lookup := &fakeLookup{accounts: map[int64]*Identity{7: {ID: 7, Username: "alice"}}}
	rs := NewResolver(codec, lookup, zap.NewNop().Sugar())

	tok, err := codec.Issue(7, "alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	ident := rs.Resolve(requestWithCookie(tok))
	if ident == nil {
		t.Fatalf("expected identity, got anonymous")
	}
	if ident.ID != 7 || ident.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestResolve_AnonymousCases(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), time.Hour)
	lookup := &fakeLookup{accounts: map[int64]*Identity{7: {ID: 7, Username: "alice"}}}
	rs := NewResolver(codec, lookup, zap.NewNop().Sugar())

	expiredCodec := NewTokenCodec([]byte("secret"), -1*time.Second)
	expired, _ := expiredCodec.Issue(7, "alice")

	foreignCodec := NewTokenCodec([]byte("other-secret"), time.Hour)
	foreign, _ := foreignCodec.Issue(7, "alice")

	deleted, _ := codec.Issue(99, "ghost")

	cases := []struct {
		name   string
		cookie string
	}{
		{"absent cookie", ""},
		{"malformed cookie", "garbage"},
		{"expired token", expired},
		{"foreign signature", foreign},
		{"deleted account", deleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if ident := rs.Resolve(requestWithCookie(tc.cookie)); ident != nil {
				t.Fatalf("expected anonymous, got %+v", ident)
			}
		})
	}
}

func TestResolve_StoreFailureIsAnonymous(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), time.Hour)
	rs := NewResolver(codec, &fakeLookup{err: errors.New("store down")}, zap.NewNop().Sugar())

	tok, _ := codec.Issue(1, "alice")
	if ident := rs.Resolve(requestWithCookie(tok)); ident != nil {
		t.Fatalf("expected anonymous on store failure, got %+v", ident)
	}
}
