package csvline

import "testing"

func TestDecodeRealtimeTagged(t *testing.T) {
	l, err := Decode("example.co.uk,Y,N,2015-01-02,2026-01-02,EXAMPLE-TAG")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindDomainRealtime {
		t.Fatalf("Kind = %v, want KindDomainRealtime", l.Kind)
	}
	if l.State != "Y" || l.Detagged != "N" || l.Tag != "EXAMPLE-TAG" {
		t.Errorf("unexpected fields: %+v", l)
	}
	if l.Created.Format(dateLayout) != "2015-01-02" || l.Expiry.Format(dateLayout) != "2026-01-02" {
		t.Errorf("unexpected dates: %+v", l)
	}
}

func TestDecodeRealtimeUntagged(t *testing.T) {
	l, err := Decode("example.com,N")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindDomainRealtime || l.State != "N" {
		t.Errorf("unexpected: %+v", l)
	}
}

func TestDecodeTimeDelay(t *testing.T) {
	l, err := Decode("example.fi,R,N,Y,2015-01-02,2026-01-02,4,SOMETAG")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindDomainTimeDelay {
		t.Fatalf("Kind = %v", l.Kind)
	}
	if l.State != "R" || l.ClassCode != 4 || l.Tag != "SOMETAG" {
		t.Errorf("unexpected: %+v", l)
	}
}

func TestDecodeUsage(t *testing.T) {
	l, err := Decode("#usage,C,60,12,86400,5000")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindUsage || l.WindowSeconds != 60 || l.Used != 12 || l.LimitWindowSeconds != 86400 || l.Limit != 5000 {
		t.Errorf("unexpected: %+v", l)
	}
}

func TestDecodeLimits(t *testing.T) {
	l, err := Decode("#limits,C,60,0,86400,0")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindLimits {
		t.Errorf("Kind = %v, want KindLimits", l.Kind)
	}
}

func TestDecodeAcceptableUseBlock(t *testing.T) {
	l, err := Decode("example.com,B,300")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindAcceptableUseBlock || l.Query != "example.com" || l.BlockSeconds != 300 {
		t.Errorf("unexpected: %+v", l)
	}
}

func TestDecodeInvalid(t *testing.T) {
	l, err := Decode("bad..domain,I")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if l.Kind != KindInvalid {
		t.Errorf("Kind = %v, want KindInvalid", l.Kind)
	}
}

func TestDecodeUnexpectedFieldCount(t *testing.T) {
	if _, err := Decode("a,b,c,d,e"); err == nil {
		t.Fatal("expected error for unexpected field count")
	}
}
