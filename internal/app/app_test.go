package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fakeDB struct {
	err error
}

func (f fakeDB) Ping(context.Context) error { return f.err }

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestNew() {
	s.NotNil(s.app.errCh)
	s.False(s.app.ready.Load())
}

func (s *ApplicationSuite) TestOpenPool_InvalidDSN() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	pool, err := openPool(ctx, "postgres://%zz")

	s.Require().Error(err)
	s.Nil(pool)
}

func (s *ApplicationSuite) TestHealth() {
	tests := []struct {
		name     string
		ready    bool
		db       pinger
		wantCode int
		wantBody string
	}{
		{name: "Starting", ready: false, db: fakeDB{}, wantCode: http.StatusServiceUnavailable, wantBody: "starting"},
		{name: "Database down", ready: true, db: fakeDB{err: errors.New("connection refused")}, wantCode: http.StatusServiceUnavailable, wantBody: "database unavailable"},
		{name: "Healthy", ready: true, db: fakeDB{}, wantCode: http.StatusOK, wantBody: "ok"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.app.ready.Store(tt.ready)
			s.app.db = tt.db

			rr := httptest.NewRecorder()
			s.app.health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			s.Equal(tt.wantCode, rr.Code)
			s.Contains(rr.Body.String(), tt.wantBody)
		})
	}
}

func (s *ApplicationSuite) TestWait_ComponentError() {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		s.app.errCh <- errors.New("listen tcp: address in use")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "address in use")
}

func (s *ApplicationSuite) TestWait_CleanShutdown() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.app.Wait(ctx, cancel)

	s.NoError(err)
}
