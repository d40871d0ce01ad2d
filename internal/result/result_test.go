package result

import (
	"errors"
	"testing"
)

func TestOkCarriesValue(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() {
		t.Fatalf("expected ok")
	}
	v, err := r.Get()
	if err != nil || v != 42 {
		t.Fatalf("unexpected get: %v %v", v, err)
	}
}

func TestErrDropsValue(t *testing.T) {
	boom := errors.New("boom")
	r := Of(7, boom)
	if r.IsOk() {
		t.Fatalf("expected error result")
	}
	v, err := r.Get()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if v != 0 {
		t.Fatalf("value must be zero on error, got %d", v)
	}
}

func TestErrNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil error")
		}
	}()
	_ = Err[int](nil)
}
