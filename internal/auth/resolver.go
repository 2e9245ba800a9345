package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Identity is the authenticated identity of a request. It never carries the
// credential hash.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AccountLookup maps a token subject id to a live account. A (nil, nil) return
// means the account does not exist (e.g. deleted after the token was issued).
type AccountLookup interface {
	FindAccountByID(ctx context.Context, id int64) (*Identity, error)
}

// Resolver derives the authenticated identity for a request from the session
// cookie: carrier -> codec -> account lookup. Any failure along the way yields
// anonymous (nil); an unauthenticated visitor is a normal state, not an error.
type Resolver struct {
	codec  *TokenCodec
	lookup AccountLookup
	logger *zap.SugaredLogger
}

func NewResolver(codec *TokenCodec, lookup AccountLookup, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{codec: codec, lookup: lookup, logger: logger}
}

// Resolve returns the request's identity, or nil for anonymous. It performs at
// most one store lookup and has no side effects.
func (rs *Resolver) Resolve(r *http.Request) *Identity {
	raw, ok := ReadToken(r)
	if !ok {
		return nil
	}
	claims, err := rs.codec.Parse(raw)
	if err != nil {
		// expired, tampered or malformed; all equal to anonymous
		return nil
	}
	ident, err := rs.lookup.FindAccountByID(r.Context(), claims.UserID)
	if err != nil {
		rs.logger.Warnw("account lookup failed during resolve", "err", err, "user_id", claims.UserID)
		return nil
	}
	return ident
}
