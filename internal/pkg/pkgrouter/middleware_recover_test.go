package pkgrouter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkglog"
)

func TestMiddlewareRecovererWritesJSON(t *testing.T) {
	h := middlewareRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(pkglog.SetCorrelationID(req.Context(), "cid-1"))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Internal server error" || body["correlation_id"] != "cid-1" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMiddlewareRecovererRepanicsOnAbort(t *testing.T) {
	h := middlewareRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rvr := recover(); rvr != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rvr)
		}
	}()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
}

func TestInternalFrames(t *testing.T) {
	stack := "goroutine 1 [running]:\n" +
		"runtime/debug.Stack()\n" +
		"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
		"example.com/app/internal/accesslogs/usecase.(*Pipeline).run(...)\n" +
		"\t/src/app/internal/accesslogs/usecase/pipeline.go:128 +0x1a\n" +
		"github.com/julienschmidt/httprouter.(*Router).ServeHTTP()\n" +
		"\t/go/pkg/mod/github.com/julienschmidt/httprouter/router.go:387 +0x81\n"

	want := []string{"internal/accesslogs/usecase/pipeline.go:128"}
	if got := internalFrames(stack); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected frames %#v", got)
	}
}
