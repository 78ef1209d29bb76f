package epperr

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindInput:          "input",
		KindUnsupported:    "unsupported",
		KindNotReady:       "not_ready",
		KindTimeout:        "timeout",
		KindRegistry:       "registry",
		KindServerInternal: "server_internal",
		Kind(99):           "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestRetriable(t *testing.T) {
	cases := []struct {
		err  *Error
		want bool
	}{
		{Input("bad"), false},
		{Unsupported("nope"), false},
		{NotReady("Draining"), true},
		{Timeout("clt-1"), true},
		{Registry("2303"), false},
		{ServerInternal("clt-1", "boom"), false},
	}
	for _, c := range cases {
		if got := c.err.Retriable(); got != c.want {
			t.Errorf("%v.Retriable() = %v, want %v", c.err.Kind(), got, c.want)
		}
	}
}

func TestErrorStringIncludesCorrelationID(t *testing.T) {
	e := Timeout("clt-9")
	if got := e.Error(); got != "timeout: command clt-9 timed out (trid=clt-9)" {
		t.Errorf("Error() = %q", got)
	}

	plain := Registry("Object does not exist")
	if got := plain.Error(); got != "registry: Object does not exist" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	var err error = NotReady("Connecting")
	if !Is(err, KindNotReady) {
		t.Fatal("Is(NotReady err, KindNotReady) = false")
	}
	if Is(err, KindTimeout) {
		t.Fatal("Is(NotReady err, KindTimeout) = true")
	}

	if Is(nil, KindInput) {
		t.Fatal("Is(nil, ...) = true")
	}

	plain := errNotAnEppErr{}
	if Is(plain, KindInput) {
		t.Fatal("Is(non-*Error, ...) = true")
	}
}

type errNotAnEppErr struct{}

func (errNotAnEppErr) Error() string { return "not an epp error" }

func TestServerInternalCarriesCorrelationID(t *testing.T) {
	e := ServerInternal("clt-5", "decode failed: %s", "eof")
	if e.CorrelationID != "clt-5" {
		t.Errorf("CorrelationID = %q, want clt-5", e.CorrelationID)
	}
	if e.Kind() != KindServerInternal {
		t.Errorf("Kind() = %v", e.Kind())
	}
	if e.Error() != "server_internal: decode failed: eof (trid=clt-5)" {
		t.Errorf("Error() = %q", e.Error())
	}
}
