package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/semaphore"

	"das_notify/internal/adapters/das"
	httpserver "das_notify/internal/adapters/http_server"
	"das_notify/internal/domain"
)

// ---- fakes ----

type fakeExec struct {
	mu    sync.Mutex
	got   []domain.Params
	res   domain.Result
	err   error
	block chan struct{}
}

func (f *fakeExec) Execute(ctx context.Context, p domain.Params) (domain.Result, error) {
	f.mu.Lock()
	f.got = append(f.got, p)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.res, f.err
}

func newServer(ex httpserver.Executor, sem *semaphore.Weighted) http.Handler {
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Exec:     ex,
		Resolve:  func(ref string) (string, error) { return das.ResolveConnector("https://das.example.com", ref) },
		Inflight: sem,
		Timeout:  time.Second,
	})
	return srv.Mux()
}

const validBody = `{"parameters":{"inputDataPath":"in.json","applicationId":"app1","documentId":"doc1"}}`

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/executions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ---- tests ----

func TestDescribe(t *testing.T) {
	h := newServer(&fakeExec{}, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/script", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var d domain.ScriptDescription
	if err := json.Unmarshal(rr.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.Input) != 6 {
		t.Fatalf("expected 6 params, got %d", len(d.Input))
	}
}

func TestExecute_OK_AppliesDefaultsAndResolvesConnector(t *testing.T) {
	ex := &fakeExec{res: domain.Result{InvocationID: "inv", DocumentID: "doc1", ClientID: "c1", Response: json.RawMessage(`{"queued":true}`)}}
	rr := post(newServer(ex, nil), validBody)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"response":{"queued":true}`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	p := ex.got[0]
	if p.Connector != "https://das.example.com/api/publish/MobileBackend/SendNotifications" {
		t.Fatalf("connector: %s", p.Connector)
	}
	if p.MessageTitle != domain.DefaultMessageTitle || p.MessageContent != domain.DefaultMessageContent {
		t.Fatalf("defaults not applied: %+v", p)
	}
}

func TestExecute_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"parse", &domain.ParseError{Path: "in.json", Err: domain.ErrEmptyInput}, http.StatusUnprocessableEntity},
		{"dispatch", &domain.DispatchError{StatusCode: 400, StatusText: "Bad Request", Body: `{"error":"bad app id"}`}, http.StatusBadGateway},
		{"other", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := post(newServer(&fakeExec{err: c.err}, nil), validBody)
			if rr.Code != c.want {
				t.Fatalf("status: got %d want %d", rr.Code, c.want)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("content type: %s", ct)
			}
		})
	}
}

func TestExecute_MissingParams(t *testing.T) {
	ex := &fakeExec{}
	rr := post(newServer(ex, nil), `{"parameters":{"inputDataPath":"in.json"}}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rr.Code)
	}
	if len(ex.got) != 0 {
		t.Fatalf("executor should not run")
	}
}

func TestExecute_BadConnector(t *testing.T) {
	ex := &fakeExec{}
	body := `{"parameters":{"inputDataPath":"in.json","applicationId":"a","documentId":"d","dasConnector":"ftp://x/y"}}`
	rr := post(newServer(ex, nil), body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestExecute_BadJSON(t *testing.T) {
	rr := post(newServer(&fakeExec{}, nil), `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestExecute_InflightCap(t *testing.T) {
	ex := &fakeExec{block: make(chan struct{})}
	h := newServer(ex, semaphore.NewWeighted(1))

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- post(h, validBody) }()

	// wait for the first execution to hold the slot
	deadline := time.Now().Add(time.Second)
	for {
		ex.mu.Lock()
		n := len(ex.got)
		ex.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first execution never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if rr := post(h, validBody); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	close(ex.block)
	if rr := <-done; rr.Code != http.StatusOK {
		t.Fatalf("first execution status: %d", rr.Code)
	}
}
