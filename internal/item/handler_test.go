package item

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itempad/itempad/internal/auth"
	itemrepo "github.com/itempad/itempad/internal/item/repo"
)

// staticLookup maps subject ids to usernames; unknown ids are anonymous.
type staticLookup map[int64]string

func (s staticLookup) FindAccountByID(ctx context.Context, id int64) (*auth.Identity, error) {
	name, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &auth.Identity{ID: id, Username: name}, nil
}

const (
	aliceID = int64(1)
	bobID   = int64(2)
)

func newTestMux(t *testing.T) (*http.ServeMux, *auth.TokenCodec) {
	t.Helper()
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	resolver := auth.NewResolver(codec, staticLookup{aliceID: "alice", bobID: "bob"}, zap.NewNop().Sugar())
	h := NewHandler(NewService(itemrepo.NewMemoryRepo()), resolver, zap.NewNop().Sugar())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /items", h.Create)
	mux.HandleFunc("GET /items", h.List)
	mux.HandleFunc("GET /items/{id}", h.Get)
	mux.HandleFunc("PUT /items/{id}", h.Update)
	mux.HandleFunc("DELETE /items/{id}", h.Delete)
	return mux, codec
}

func sessionCookie(t *testing.T, codec *auth.TokenCodec, id int64, username string) *apitest.Cookie {
	t.Helper()
	tok, err := codec.Issue(id, username)
	require.NoError(t, err)
	return apitest.NewCookie(auth.CookieName).Value(tok)
}

func TestItems_RequireAuthentication(t *testing.T) {
	t.Parallel()

	mux, _ := newTestMux(t)

	anonymous := []*apitest.Request{
		apitest.New().Handler(mux).Post("/items"),
		apitest.New().Handler(mux).Get("/items"),
		apitest.New().Handler(mux).Get("/items/1"),
		apitest.New().Handler(mux).Put("/items/1"),
		apitest.New().Handler(mux).Delete("/items/1"),
	}
	for _, req := range anonymous {
		req.
			Expect(t).
			Status(http.StatusUnauthorized).
			Body(`{"error":"authentication required"}`).
			End()
	}

	// an expired session is anonymous too
	expiredCodec := auth.NewTokenCodec([]byte("test-secret"), -1*time.Second)
	expired, err := expiredCodec.Issue(aliceID, "alice")
	require.NoError(t, err)

	apitest.New().
		Handler(mux).
		Get("/items").
		Cookies(apitest.NewCookie(auth.CookieName).Value(expired)).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestItems_CRUDAsOwner(t *testing.T) {
	t.Parallel()

	mux, codec := newTestMux(t)
	alice := sessionCookie(t, codec, aliceID, "alice")

	result := apitest.New().
		Handler(mux).
		Post("/items").
		Cookies(alice).
		JSON(`{"title":"Groceries","description":"milk, eggs"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	var created struct {
		ID int64 `json:"id"`
	}
	result.JSON(&created)
	require.NotZero(t, created.ID)

	apitest.New().
		Handler(mux).
		Get(fmt.Sprintf("/items/%d", created.ID)).
		Cookies(alice).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(mux).
		Put(fmt.Sprintf("/items/%d", created.ID)).
		Cookies(alice).
		JSON(`{"title":"Groceries (updated)"}`).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.New().
		Handler(mux).
		Delete(fmt.Sprintf("/items/%d", created.ID)).
		Cookies(alice).
		Expect(t).
		Status(http.StatusNoContent).
		End()

	apitest.New().
		Handler(mux).
		Get(fmt.Sprintf("/items/%d", created.ID)).
		Cookies(alice).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestItems_ForeignOwnerLooksLikeMissing(t *testing.T) {
	t.Parallel()

	mux, codec := newTestMux(t)
	alice := sessionCookie(t, codec, aliceID, "alice")
	bob := sessionCookie(t, codec, bobID, "bob")

	result := apitest.New().
		Handler(mux).
		Post("/items").
		Cookies(alice).
		JSON(`{"title":"Alice's item"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	var created struct {
		ID int64 `json:"id"`
	}
	result.JSON(&created)

	path := fmt.Sprintf("/items/%d", created.ID)
	apitest.New().Handler(mux).Get(path).Cookies(bob).
		Expect(t).Status(http.StatusNotFound).Body(`{"error":"not found"}`).End()
	apitest.New().Handler(mux).Put(path).Cookies(bob).JSON(`{"title":"Hijacked"}`).
		Expect(t).Status(http.StatusNotFound).Body(`{"error":"not found"}`).End()
	apitest.New().Handler(mux).Delete(path).Cookies(bob).
		Expect(t).Status(http.StatusNotFound).Body(`{"error":"not found"}`).End()

	// same body as a genuinely nonexistent id
	apitest.New().Handler(mux).Get("/items/424242").Cookies(bob).
		Expect(t).Status(http.StatusNotFound).Body(`{"error":"not found"}`).End()

	// and a non-numeric id is not distinguishable either
	apitest.New().Handler(mux).Get("/items/abc").Cookies(bob).
		Expect(t).Status(http.StatusNotFound).Body(`{"error":"not found"}`).End()

	// alice still sees her item unchanged
	apitest.New().Handler(mux).Get(path).Cookies(alice).
		Expect(t).Status(http.StatusOK).End()
}

func TestItems_ListIsOwnerScoped(t *testing.T) {
	t.Parallel()

	mux, codec := newTestMux(t)
	alice := sessionCookie(t, codec, aliceID, "alice")
	bob := sessionCookie(t, codec, bobID, "bob")

	apitest.New().Handler(mux).Post("/items").Cookies(alice).JSON(`{"title":"mine"}`).
		Expect(t).Status(http.StatusCreated).End()

	apitest.New().Handler(mux).Get("/items").Cookies(bob).
		Expect(t).Status(http.StatusOK).Body(`[]`).End()
}

func TestItems_CreateValidation(t *testing.T) {
	t.Parallel()

	mux, codec := newTestMux(t)
	alice := sessionCookie(t, codec, aliceID, "alice")

	apitest.New().Handler(mux).Post("/items").Cookies(alice).JSON(`{"title":"   "}`).
		Expect(t).Status(http.StatusBadRequest).Body(`{"error":"title is required"}`).End()
}
