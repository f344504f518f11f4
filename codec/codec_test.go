package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyembed/py-runtime/codec"
	"github.com/pyembed/py-runtime/enginetest"
	"github.com/pyembed/py-runtime/errors"
)

func TestEncodeNarrowRoundTrip(t *testing.T) {
	ip := enginetest.New()

	cases := []struct {
		name string
		text string
	}{
		{"ascii", "hello"},
		{"accents", "héllo wörld"},
		{"cjk", "こんにちは"},
		{"astral", "里\U0001F40D"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := codec.EncodeToNarrow(ip, []rune(tc.text))
			if err != nil {
				t.Fatalf("EncodeToNarrow: %v", err)
			}
			defer buf.Free()

			got, err := codec.ReadNarrow(ip.Memory(), buf.Ptr())
			if err != nil {
				t.Fatalf("ReadNarrow: %v", err)
			}
			if got != tc.text {
				t.Fatalf("round trip = %q, want %q", got, tc.text)
			}
			if want := uint32(len(tc.text) + 1); buf.Size() != want {
				t.Fatalf("size = %d, want %d", buf.Size(), want)
			}
		})
	}
}

func TestDecodeWideRoundTrip(t *testing.T) {
	ip := enginetest.New()

	text := "payload π £ 🜁"
	buf, err := codec.DecodeToWide(ip, text)
	if err != nil {
		t.Fatalf("DecodeToWide: %v", err)
	}
	defer buf.Free()

	got, err := codec.ReadWide(ip.Memory(), buf.Ptr())
	if err != nil {
		t.Fatalf("ReadWide: %v", err)
	}
	if diff := cmp.Diff([]rune(text), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("decode leaked into tracked domain: %d allocs", got)
	}
}

func TestEncodeRejectsLoneSurrogate(t *testing.T) {
	ip := enginetest.New()

	_, err := codec.EncodeToNarrow(ip, []rune{'a', 0xD800, 'b'})
	if !errors.IsKind(err, errors.KindEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 0 {
		t.Fatalf("failed encode leaked %d tracked allocs", got)
	}
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	ip := enginetest.New()

	_, err := codec.DecodeToWide(ip, "ok\xfftail")
	if !errors.IsKind(err, errors.KindEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if got := ip.LiveAllocs(enginetest.DomainRaw); got != 0 {
		t.Fatalf("failed decode leaked %d raw allocs", got)
	}
}

func TestConverterDomains(t *testing.T) {
	ip := enginetest.New()

	nbuf, err := codec.EncodeToNarrow(ip, []rune("tracked"))
	if err != nil {
		t.Fatalf("EncodeToNarrow: %v", err)
	}
	wbuf, err := codec.DecodeToWide(ip, "raw")
	if err != nil {
		t.Fatalf("DecodeToWide: %v", err)
	}

	if got := ip.LiveAllocs(enginetest.DomainTracked); got != 1 {
		t.Fatalf("tracked live allocs = %d, want 1", got)
	}
	if got := ip.LiveAllocs(enginetest.DomainRaw); got != 1 {
		t.Fatalf("raw live allocs = %d, want 1", got)
	}

	nbuf.Free()
	wbuf.Free()
	if got := ip.LiveAllocs(enginetest.DomainTracked) + ip.LiveAllocs(enginetest.DomainRaw); got != 0 {
		t.Fatalf("live allocs after Free = %d, want 0", got)
	}
}
