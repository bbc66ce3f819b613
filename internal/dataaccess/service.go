// Package dataaccess sits between callers and the portfolio API. Every
// accessor returns a typed envelope and degrades to generated data instead
// of failing: an unreachable backend produces a success=false envelope that
// still carries a usable payload. Auth failures are the one exception and
// always propagate so the caller can re-authenticate.
package dataaccess

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/session"
	"github.com/Shaoyanting/HT-financial-system/internal/transport"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/errors"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
	"github.com/Shaoyanting/HT-financial-system/pkg/response"
)

// AccessTimeout bounds every background data call. Accessors never show UI
// feedback; a slow backend simply means generated data sooner.
const AccessTimeout = 10 * time.Second

const (
	msgOffline  = "no active session, serving generated data"
	msgFallback = "api unavailable, serving generated data"
)

// Service is the data access layer. All accessors are safe for concurrent
// use.
type Service struct {
	client  *transport.Client
	session *session.Session
	gen     *mockdata.Generator
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a Service. A timeout <= 0 selects AccessTimeout.
func New(client *transport.Client, sess *session.Session, gen *mockdata.Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = AccessTimeout
	}
	return &Service{
		client:  client,
		session: sess,
		gen:     gen,
		timeout: timeout,
		log:     logger.With("dataaccess"),
	}
}

// fetch runs the shared accessor flow: skip the network without a session,
// call silently, decode with content-type checking, and substitute mock()
// in a degraded envelope on any failure except an auth failure.
func fetch[T any](ctx context.Context, s *Service, endpoint string, mock func() T) (*response.Envelope[T], error) {
	if !s.session.IsAuthenticated() {
		return response.Degraded(mock(), msgOffline), nil
	}

	resp, err := s.client.Get(ctx, endpoint, transport.Silent(s.timeout))
	if err != nil {
		if errors.IsAuthRequired(err) {
			return nil, err
		}
		s.log.Warn().Str("endpoint", endpoint).Err(err).Msg("request failed, using generated data")
		return response.Degraded(mock(), msgFallback), nil
	}

	env, err := transport.Decode[response.Envelope[T]](resp)
	if err != nil {
		s.log.Warn().Str("endpoint", endpoint).Err(err).Msg("undecodable response, using generated data")
		return response.Degraded(mock(), msgFallback), nil
	}
	return env, nil
}

// Login authenticates against the API and persists the issued token and
// user. When the API is unreachable the built-in demo accounts are accepted
// so the dashboard stays usable offline; a rejected credential is always an
// error, never a fallback.
func (s *Service) Login(ctx context.Context, username, password string) (*types.LoginData, error) {
	req := types.LoginRequest{Username: username, Password: password}

	resp, err := s.client.Post(ctx, "/auth/login", req, transport.Silent(s.timeout))
	switch {
	case err == nil:
		env, derr := transport.Decode[response.Envelope[types.LoginData]](resp)
		if derr != nil {
			return nil, derr
		}
		if !env.Success {
			return nil, errors.NewHTTP(env.Code, env.Message, nil)
		}
		if serr := s.session.SetAuth(env.Data.Token, env.Data.User); serr != nil {
			return nil, serr
		}
		return &env.Data, nil

	case errors.IsAuthRequired(err):
		return nil, err

	default:
		u, ok := mockdata.FindMockUser(username, password)
		if !ok {
			return nil, err
		}
		s.log.Warn().Str("username", username).Msg("api unreachable, demo account login")
		data := types.LoginData{Token: "mock-token-" + uuid.NewString(), User: u.User}
		if serr := s.session.SetAuth(data.Token, data.User); serr != nil {
			return nil, serr
		}
		return &data, nil
	}
}

// Logout drops the persisted session.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// rangeQuery encodes an optional date range as a query string.
func rangeQuery(dateFrom, dateTo string) string {
	v := url.Values{}
	if dateFrom != "" {
		v.Set("dateFrom", dateFrom)
	}
	if dateTo != "" {
		v.Set("dateTo", dateTo)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
