package result_test

import (
	"errors"
	"testing"

	"github.com/vecopay/vecopay/internal/result"
)

func TestZeroValueIsLoading(t *testing.T) {
	var r result.Result[int]

	if !r.IsLoading() {
		t.Error("zero value should be Loading")
	}
	if r.IsSuccess() || r.IsError() {
		t.Error("zero value should be neither Success nor Error")
	}
}

func TestVariantAccessors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name        string
		r           result.Result[string]
		wantSuccess bool
		wantError   bool
		wantValue   string
		wantMessage string
	}{
		{
			name:        "success",
			r:           result.Success("hello"),
			wantSuccess: true,
			wantValue:   "hello",
		},
		{
			name:        "error",
			r:           result.Error[string](cause, "it broke"),
			wantError:   true,
			wantMessage: "it broke",
		},
		{
			name: "loading",
			r:    result.Loading[string](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.IsSuccess() != tt.wantSuccess {
				t.Errorf("IsSuccess() = %v, want %v", tt.r.IsSuccess(), tt.wantSuccess)
			}
			if tt.r.IsError() != tt.wantError {
				t.Errorf("IsError() = %v, want %v", tt.r.IsError(), tt.wantError)
			}
			if tt.r.Value() != tt.wantValue {
				t.Errorf("Value() = %q, want %q", tt.r.Value(), tt.wantValue)
			}
			if tt.r.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", tt.r.Message(), tt.wantMessage)
			}
		})
	}

	if got := result.Error[string](cause, "x").Cause(); !errors.Is(got, cause) {
		t.Errorf("Cause() = %v, want %v", got, cause)
	}
}

func TestFoldHandlesEveryVariant(t *testing.T) {
	onSuccess := func(v int) string { return "success" }
	onError := func(err error, msg string) string { return "error:" + msg }
	onLoading := func() string { return "loading" }

	if got := result.Fold(result.Success(1), onSuccess, onError, onLoading); got != "success" {
		t.Errorf("Fold(Success) = %q", got)
	}
	if got := result.Fold(result.Error[int](errors.New("e"), "m"), onSuccess, onError, onLoading); got != "error:m" {
		t.Errorf("Fold(Error) = %q", got)
	}
	if got := result.Fold(result.Loading[int](), onSuccess, onError, onLoading); got != "loading" {
		t.Errorf("Fold(Loading) = %q", got)
	}
}

func TestPropagate(t *testing.T) {
	cause := errors.New("boom")

	errRes := result.Propagate[string](result.Error[int](cause, "it broke"))
	if !errRes.IsError() {
		t.Fatal("propagated error should stay an error")
	}
	if errRes.Message() != "it broke" {
		t.Errorf("Message() = %q, want %q", errRes.Message(), "it broke")
	}
	if !errors.Is(errRes.Cause(), cause) {
		t.Errorf("Cause() = %v, want %v", errRes.Cause(), cause)
	}

	if got := result.Propagate[string](result.Loading[int]()); !got.IsLoading() {
		t.Error("propagated loading should stay loading")
	}

	// A success never crosses Propagate with its value; it degrades to
	// the transient sentinel.
	if got := result.Propagate[string](result.Success(7)); !got.IsLoading() {
		t.Error("propagated success should degrade to loading")
	}
}
