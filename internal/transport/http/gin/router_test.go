package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/domain"
	"github.com/kirinyoku/eventdocs/internal/pricing"
	"github.com/kirinyoku/eventdocs/internal/repository"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
	"github.com/kirinyoku/eventdocs/internal/service"
	"github.com/kirinyoku/eventdocs/internal/service/admin"
	"github.com/kirinyoku/eventdocs/internal/service/documents"
)

var (
	testEventID  = uuid.MustParse("0b0b0b0b-0000-4000-8000-000000000001")
	testPersonID = uuid.MustParse("0b0b0b0b-0000-4000-8000-000000000002")
	testStaffID  = uuid.MustParse("0b0b0b0b-0000-4000-8000-000000000003")
	// busyEventID fails with a retryable store error
	busyEventID = uuid.MustParse("0b0b0b0b-0000-4000-8000-000000000004")
)

type stubSource struct{}

func (stubSource) Event(ctx context.Context, id uuid.UUID) (domain.EventSnapshot, error) {
	if id == busyEventID {
		return domain.EventSnapshot{}, fmt.Errorf("postgresrepo.RecordsRepo.GetEventSnapshot: %w", repository.ErrRetryable)
	}
	if id != testEventID {
		return domain.EventSnapshot{}, documents.ErrEventNotFound
	}
	return domain.EventSnapshot{
		ID:        id,
		Event:     domain.EventRecord{Name: "Festival", Date: "2024-01-20"},
		Organizer: &domain.OrganizerRecord{Name: "Maria"},
	}, nil
}

func (stubSource) Participant(ctx context.Context, eventID, id uuid.UUID) (domain.ParticipantRecord, error) {
	if id != testPersonID {
		return domain.ParticipantRecord{}, documents.ErrParticipantNotFound
	}
	return domain.ParticipantRecord{Name: "Ana Souza"}, nil
}

func (stubSource) Collaborator(ctx context.Context, eventID, id uuid.UUID) (domain.CollaboratorRecord, error) {
	if id != testStaffID {
		return domain.CollaboratorRecord{}, documents.ErrCollaboratorNotFound
	}
	return domain.CollaboratorRecord{Name: "Bruno", Role: "Bar"}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(p *document.Page) ([]byte, error) {
	return []byte("%PDF-" + p.Name), nil
}

type stubAdmin struct {
	invalidated []string
	published   []string
}

func (s *stubAdmin) InvalidateEvent(ctx context.Context, id string) error {
	s.invalidated = append(s.invalidated, id)
	return nil
}

func (s *stubAdmin) PublishEventChanged(ctx context.Context, id string) error {
	s.published = append(s.published, id)
	return nil
}

type stubLimiter struct {
	d   redisrepo.Decision
	err error
}

func (l stubLimiter) Allow(ctx context.Context, id string) (redisrepo.Decision, error) {
	return l.d, l.err
}

func newTestRouter(t *testing.T, opts Options) (*gin.Engine, *stubAdmin) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	calc, err := pricing.NewCalculator(pricing.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	money, err := pricing.NewFormatter("CHF", "fr-CH")
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}

	composer := document.New(document.ApproxMeasurer{}, nil, logger, document.Config{})
	adm := &stubAdmin{}

	svcs := service.NewServices(
		documents.New(stubSource{}, composer, stubRenderer{}, logger),
		admin.New(adm, adm, logger),
		calc,
		money,
	)

	return NewRouter(svcs, opts, logger), adm
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestCalculate_Query(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/pricing/calculate?ticket_price=30&num_tickets=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var resp CalculateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan.Name != pricing.PlanFree {
		t.Errorf("plan = %q", resp.Plan.Name)
	}
	if resp.GrossRevenue != 150 || resp.TotalCommission != 2.5 || resp.NetRevenue != 147.5 {
		t.Errorf("unexpected amounts %+v", resp)
	}
	if resp.Formatted.NetRevenue != "147,50 CHF" || resp.Currency != "CHF" {
		t.Errorf("formatted = %+v, currency %q", resp.Formatted, resp.Currency)
	}
}

func TestCalculate_QueryNoAdsAndGarbage(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/pricing/calculate?ticket_price=abc&num_tickets=-3&no_third_party_ads=true", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp CalculateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Plan.Name != pricing.PlanPro {
		t.Errorf("plan = %q, want Pro", resp.Plan.Name)
	}
	if resp.Input.TicketPrice != 0 || resp.Input.NumTickets != 0 || resp.NetRevenue != 0 {
		t.Errorf("expected zeroed input, got %+v", resp)
	}
}

func TestCalculate_JSON(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	cases := []struct {
		name string
		body string
		plan string
		net  float64
	}{
		{"numbers", `{"ticket_price": 80, "num_tickets": 2}`, pricing.PlanPlus, 152.78},
		{"strings", `{"ticket_price": "80", "num_tickets": "2"}`, pricing.PlanPlus, 152.78},
		{"no ads", `{"ticket_price": 10, "num_tickets": 1, "no_third_party_ads": true}`, pricing.PlanPro, 8.62},
		{"nulls", `{"ticket_price": null, "num_tickets": null}`, pricing.PlanFree, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/pricing/calculate", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := do(r, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body)
			}

			var resp CalculateResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Plan.Name != tc.plan {
				t.Errorf("plan = %q, want %q", resp.Plan.Name, tc.plan)
			}
			if diff := resp.NetRevenue - tc.net; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("net = %v, want %v", resp.NetRevenue, tc.net)
			}
		})
	}
}

func TestCalculate_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/pricing/calculate", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	if w := do(r, req); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListPlans_ETag(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/pricing/plans", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp PlansResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Plans) != 3 || resp.Plans[0].Name != pricing.PlanFree {
		t.Errorf("plans = %+v", resp.Plans)
	}

	tag := w.Header().Get("ETag")
	if !strings.HasPrefix(tag, `W/"`) {
		t.Fatalf("etag = %q", tag)
	}

	req := httptest.NewRequest(http.MethodGet, "/pricing/plans", nil)
	req.Header.Set("If-None-Match", tag)
	if w := do(r, req); w.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", w.Code)
	}
}

func TestDocuments(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	base := "/events/" + testEventID.String()

	t.Run("certificate pdf", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, base+"/participants/"+testPersonID.String()+"/certificate", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("content type = %q", ct)
		}
		cd := w.Header().Get("Content-Disposition")
		if !strings.HasPrefix(cd, "attachment") || !strings.Contains(cd, "certificado-Ana_Souza-Festival.pdf") {
			t.Errorf("content disposition = %q", cd)
		}
		if !strings.HasPrefix(w.Body.String(), "%PDF-") {
			t.Errorf("body = %q", w.Body)
		}
	})

	t.Run("badge json", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, base+"/participants/"+testPersonID.String()+"/badge?format=json", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}

		var page struct {
			Name string            `json:"name"`
			Ops  []json.RawMessage `json:"ops"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if page.Name != "cracha-Ana_Souza" || len(page.Ops) == 0 {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("collaborator badge", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, base+"/collaborators/"+testStaffID.String()+"/badge", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, base+"/participants/"+uuid.NewString()+"/badge", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		w = do(r, httptest.NewRequest(http.MethodGet, "/events/"+uuid.NewString()+"/collaborators/"+testStaffID.String()+"/badge", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/events/42/participants/"+testPersonID.String()+"/badge", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestDocuments_RetryableStoreError(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	w := do(r, httptest.NewRequest(http.MethodGet, "/events/"+busyEventID.String()+"/participants/"+testPersonID.String()+"/certificate", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}

func TestDocuments_RateLimited(t *testing.T) {
	limited := stubLimiter{d: redisrepo.Decision{Allowed: false, Current: 11, Limit: 10, RetryAfter: 1500 * time.Millisecond}}
	r, _ := newTestRouter(t, Options{Limiter: limited})

	w := do(r, httptest.NewRequest(http.MethodGet, "/events/"+testEventID.String()+"/participants/"+testPersonID.String()+"/badge", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "2" {
		t.Errorf("Retry-After = %q, want 2", got)
	}

	// a broken limiter lets requests through
	r, _ = newTestRouter(t, Options{Limiter: stubLimiter{err: errors.New("redis down")}})
	w = do(r, httptest.NewRequest(http.MethodGet, "/events/"+testEventID.String()+"/participants/"+testPersonID.String()+"/badge", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAdminEventChanged_Auth(t *testing.T) {
	r, adm := newTestRouter(t, Options{JWTSecret: "s3cret"})
	path := "/admin/events/" + testEventID.String() + "/changed"

	if w := do(r, httptest.NewRequest(http.MethodPost, path, nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other", jwt.MapClaims{"sub": "u1"}))
	if w := do(r, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "s3cret", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	if w := do(r, req); w.Code != http.StatusAccepted {
		t.Fatalf("valid token: status = %d, want 202", w.Code)
	}

	if len(adm.invalidated) != 1 || adm.invalidated[0] != testEventID.String() {
		t.Errorf("invalidated = %v", adm.invalidated)
	}
	if len(adm.published) != 1 {
		t.Errorf("published = %v", adm.published)
	}

	// pricing stays public
	if w := do(r, httptest.NewRequest(http.MethodGet, "/pricing/plans", nil)); w.Code != http.StatusOK {
		t.Fatalf("plans: status = %d", w.Code)
	}
}

func TestLiveCalculator(t *testing.T) {
	r, _ := newTestRouter(t, Options{})
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/pricing/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"ticket_price": "30", "num_tickets": 5}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var frame liveFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != "result" || frame.Result == nil {
		t.Fatalf("frame = %+v", frame)
	}
	if frame.Result.Plan.Name != pricing.PlanFree || frame.Result.NetRevenue != 147.5 {
		t.Errorf("result = %+v", frame.Result)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame = liveFrame{}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != "error" {
		t.Errorf("frame = %+v, want error", frame)
	}
}

func TestFlexNumber(t *testing.T) {
	cases := map[string]FlexNumber{
		`12.5`:     "12.5",
		`"12,5"`:   "12,5",
		`null`:     "",
		` 3 `:      "3",
		`"abc"`:    "abc",
		`"1e3"`:    "1e3",
		`-0.00001`: "-0.00001",
	}

	for in, want := range cases {
		var n FlexNumber
		if err := n.UnmarshalJSON([]byte(in)); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", in, err)
		}
		if n != want {
			t.Errorf("UnmarshalJSON(%s) = %q, want %q", in, n, want)
		}
	}
}
