package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/statefade/pkg/logging"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "stateanim.New",
		Kind: KindConfig,
		Err:  stderrors.New("default state is empty"),
	}
	got := err.Error()
	want := "stateanim.New [config]: default state is empty"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindPlatform, "platform"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindContract, "contract"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("load: %w", Config("config.Load", "unknown state %q", "glowing"))
	if !IsKind(err, KindConfig) {
		t.Error("expected wrapped config error to match KindConfig")
	}
	if IsKind(err, KindPlatform) {
		t.Error("config error must not match KindPlatform")
	}
	if IsKind(stderrors.New("plain"), KindConfig) {
		t.Error("plain error must not match any kind")
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "stateanim.Paint"
	if got, want := err.Error(), "panic in stateanim.Paint: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *Error
	handler := &testHandler{
		onError: func(err *Error) {
			capturedErr = err
		},
	}

	defer SetHandler(SetHandler(handler))

	Report(&Error{
		Op:   "test.op",
		Kind: KindPlatform,
		Err:  stderrors.New("no capacity"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	defer SetHandler(SetHandler(handler))

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestRecoverKeepsStructuredErrors(t *testing.T) {
	var captured *Error
	defer SetHandler(SetHandler(&testHandler{onError: func(err *Error) { captured = err }}))

	func() {
		defer Recover("stateanim.Paint")
		panic(&Error{Op: "stateanim.SetState", Kind: KindContract, Err: stderrors.New("state changed while painting")})
	}()

	if captured == nil {
		t.Fatal("expected the *Error panic to be reported as an error")
	}
	if captured.Kind != KindContract {
		t.Errorf("Kind = %v, want %v", captured.Kind, KindContract)
	}
	if captured.StackTrace == "" || captured.Timestamp.IsZero() {
		t.Error("expected stack trace and timestamp to be filled in")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)

	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install a LogHandler, got %T", Handler())
	}
}

func TestSetHandlerReturnsPrevious(t *testing.T) {
	first := &testHandler{}
	prev := SetHandler(first)
	defer SetHandler(prev)

	if got := SetHandler(&testHandler{}); got != first {
		t.Errorf("SetHandler returned %v, want the handler it replaced", got)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(logging.NewWriter(&buf, slog.LevelInfo))

	h.HandleError(&Error{Op: "config.Load", Kind: KindConfig, Err: stderrors.New("bad duration")})
	h.HandlePanic(&PanicError{Op: "stateanim.Paint", Value: "nil canvas"})

	out := buf.String()
	for _, want := range []string{"op=config.Load", "kind=config", "err=\"bad duration\"", "op=stateanim.Paint"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
