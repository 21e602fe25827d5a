package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
	"github.com/you/hrmportal/internal/mocks"
)

const testCookieName = "hrm_session"

func sessionRouter(t *testing.T, cookies domain.CookieService, sessions domain.SessionService) *gin.Engine {
	t.Helper()

	mw := NewSessionMW(cookies, sessions, testCookieName, time.Hour, zap.NewNop())
	r := gin.New()
	r.Use(mw.Attach())
	r.GET("/whoami", func(c *gin.Context) {
		session := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"sessionId":     SessionIDFrom(c),
			"authenticated": session.Authenticated(),
		})
	})
	return r
}

func TestSessionMW_MintsCookieForNewVisitor(t *testing.T) {
	cookies := mocks.NewMockCookieService()
	sessions := mocks.NewMockSessionService()
	r := sessionRouter(t, cookies, sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var issued *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			issued = c
		}
	}
	if issued == nil {
		t.Fatal("expected a session cookie to be set")
	}
	if !issued.HttpOnly {
		t.Error("expected session cookie to be HttpOnly")
	}
	if issued.Value == "" {
		t.Error("expected non-empty cookie value")
	}
}

func TestSessionMW_RestoresExistingSession(t *testing.T) {
	cookies := mocks.NewMockCookieService()
	sessions := mocks.NewMockSessionService()

	var restoredID string
	sessions.RestoreFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		restoredID = sessionID
		return &domain.Session{
			User:  &domain.User{ID: "EMP042", Role: domain.RoleEmployee},
			Token: "tok_abc",
		}, nil
	}

	r := sessionRouter(t, cookies, sessions)

	cookie, err := cookies.Issue("sess_known")
	if err != nil {
		t.Fatalf("failed to mint test cookie: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if restoredID != "sess_known" {
		t.Errorf("expected restore of sess_known, got %q", restoredID)
	}

	// A valid cookie is not reissued
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			t.Error("expected no new cookie for a valid session")
		}
	}
}

func TestSessionMW_InvalidCookieGetsFreshSession(t *testing.T) {
	cookies := mocks.NewMockCookieService()
	sessions := mocks.NewMockSessionService()
	r := sessionRouter(t, cookies, sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "forged-cookie"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var issued *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			issued = c
		}
	}
	if issued == nil {
		t.Fatal("expected a replacement cookie for the forged one")
	}
	if issued.Value == "forged-cookie" {
		t.Error("expected replacement cookie to differ from the forged one")
	}
}

func TestSessionMW_RestoreFailureFallsBackToAnonymous(t *testing.T) {
	cookies := mocks.NewMockCookieService()
	sessions := mocks.NewMockSessionService()
	sessions.RestoreFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return nil, domain.ErrUpstreamUnavailable
	}

	r := sessionRouter(t, cookies, sessions)

	// The page still renders; the visitor is just anonymous
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite store outage, got %d", w.Code)
	}
}
