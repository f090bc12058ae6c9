package errors

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/elements/pkg/log"
)

func TestElementErrorString(t *testing.T) {
	err := &ElementError{
		Op:   "element.Update",
		Kind: KindRender,
		Err:  stderrors.New("boom"),
	}
	want := "element.Update [render]: boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestElementErrorWithElement(t *testing.T) {
	err := &ElementError{
		Op:      "element.AttributeChanged",
		Kind:    KindAttribute,
		Element: "abc",
		Err:     stderrors.New("bad"),
	}
	got := err.Error()
	if !strings.Contains(got, "element=abc") {
		t.Errorf("error string %q should contain %q", got, "element=abc")
	}
}

func TestElementErrorUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := &ElementError{Op: "x", Err: inner}
	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindLifecycle, "lifecycle"},
		{KindRender, "render"},
		{KindAttribute, "attribute"},
		{KindSchema, "schema"},
		{KindPanic, "panic"},
		{KindManifest, "manifest"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "loop.Drain"
	if got, want := err.Error(), "panic in loop.Drain: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestRenderErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *RenderError
		want string
	}{
		{"panic", &RenderError{Component: "x-counter", Recovered: "nil map"}, "panic in x-counter render: nil map"},
		{"error", &RenderError{Component: "x-counter", Phase: "commit", Err: stderrors.New("detached")}, "error in x-counter commit: detached"},
		{"unknown", &RenderError{Component: "x-counter"}, "unknown error in x-counter render"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderErrorUnwrapsPanickedError(t *testing.T) {
	inner := stderrors.New("inner")
	err := &RenderError{Component: "x", Recovered: inner}
	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should see an error passed to panic")
	}
}

func TestCoerceErrorString(t *testing.T) {
	err := &CoerceError{Attr: "count", Type: "number", Value: "abc", Err: stderrors.New("invalid syntax")}
	want := `cannot coerce attribute count="abc" to number: invalid syntax`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *ElementError
	SetHandler(&testHandler{onError: func(err *ElementError) { captured = err }})
	defer SetHandler(nil)

	Report(&ElementError{Op: "test.op", Kind: KindLifecycle, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverRender(t *testing.T) {
	var err error
	func() {
		defer RecoverRender("x-card", "commit", &err)
		panic(42)
	}()

	var re *RenderError
	if !stderrors.As(err, &re) {
		t.Fatalf("err = %v, want *RenderError", err)
	}
	if re.Component != "x-card" || re.Phase != "commit" || re.Recovered != 42 {
		t.Errorf("RenderError = %+v", re)
	}
	if re.StackTrace == "" || re.Timestamp.IsZero() {
		t.Error("expected stack and timestamp")
	}

	err = nil
	func() {
		defer RecoverRender("x-card", "commit", &err)
	}()
	if err != nil {
		t.Errorf("err without panic = %v, want nil", err)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing.tRunner") {
		t.Errorf("stack trace should contain the test runner, got: %s", stack)
	}
	if strings.Contains(stack, "runtime.goexit") {
		t.Errorf("stack trace should skip runtime frames, got: %s", stack)
	}
}

func TestSetHandler(t *testing.T) {
	h := &testHandler{}
	prev := SetHandler(h)
	defer SetHandler(prev)

	if Handler() != h {
		t.Errorf("Handler() = %T, want the installed handler", Handler())
	}
	if old := SetHandler(nil); old != h {
		t.Errorf("SetHandler returned %T, want the previous handler", old)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install a LogHandler, got %T", Handler())
	}
}

func TestLogHandlerWritesToLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log.SetLogger(zap.New(core))
	defer log.SetLogger(nil)

	h := &LogHandler{Verbose: true}
	h.HandleError(&ElementError{Op: "op", Kind: KindRender, Element: "e1", Err: stderrors.New("x"), StackTrace: "stack"})
	h.HandlePanic(&PanicError{Op: "loop.Drain", Value: "v"})

	if logs.Len() != 2 {
		t.Fatalf("logged entries = %d, want 2", logs.Len())
	}
	first := logs.All()[0].ContextMap()
	if first["element"] != "e1" {
		t.Errorf("element field = %v, want e1", first["element"])
	}
	if first["stack"] != "stack" {
		t.Errorf("stack field = %v, want stack", first["stack"])
	}
}

type testHandler struct {
	onError func(*ElementError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ElementError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
