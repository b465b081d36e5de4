package codec

import (
	"reflect"
	"testing"
)

func TestDecodeOrdered(t *testing.T) {
	t.Run("PreservesOrderAndDuplicates", func(t *testing.T) {
		pairs := DecodeOrdered("ytv=abc123&sct=xyz789&ytv=def456")

		want := []Pair{
			{Key: "ytv", Value: "abc123"},
			{Key: "sct", Value: "xyz789"},
			{Key: "ytv", Value: "def456"},
		}
		if !reflect.DeepEqual(pairs, want) {
			t.Errorf("expected %v, got %v", want, pairs)
		}
	})

	t.Run("StripsFragmentMarker", func(t *testing.T) {
		pairs := DecodeOrdered("#ytv=abc123")
		if len(pairs) != 1 || pairs[0].Key != "ytv" || pairs[0].Value != "abc123" {
			t.Errorf("unexpected pairs: %v", pairs)
		}
	})

	t.Run("EmptySource", func(t *testing.T) {
		pairs := DecodeOrdered("")
		if pairs == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(pairs) != 0 {
			t.Errorf("expected no pairs, got %v", pairs)
		}
	})

	t.Run("KeyWithoutEquals", func(t *testing.T) {
		pairs := DecodeOrdered("ytv")
		if len(pairs) != 1 {
			t.Fatalf("expected one pair, got %v", pairs)
		}
		if pairs[0].Key != "ytv" || pairs[0].Value != "" {
			t.Errorf("expected (ytv=), got %v", pairs[0])
		}
	})

	t.Run("SemicolonSeparator", func(t *testing.T) {
		pairs := DecodeOrdered("ytv=a;sct=b")
		if len(pairs) != 2 || pairs[1].Key != "sct" {
			t.Errorf("unexpected pairs: %v", pairs)
		}
	})

	t.Run("PlusDecodesToSpace", func(t *testing.T) {
		pairs := DecodeOrdered("q=hello+world")
		if pairs[0].Value != "hello world" {
			t.Errorf("expected %q, got %q", "hello world", pairs[0].Value)
		}
	})

	t.Run("MalformedEscapeFallsBackToRaw", func(t *testing.T) {
		pairs := DecodeOrdered("q=bad%zzvalue+x")
		if len(pairs) != 1 {
			t.Fatalf("expected one pair, got %v", pairs)
		}
		// Decoding fails, so the space-normalized raw substring is kept.
		if pairs[0].Value != "bad%zzvalue x" {
			t.Errorf("expected raw fallback, got %q", pairs[0].Value)
		}
	})

	t.Run("PercentDecoding", func(t *testing.T) {
		pairs := DecodeOrdered("q=50%25+off")
		if pairs[0].Value != "50% off" {
			t.Errorf("expected %q, got %q", "50% off", pairs[0].Value)
		}
	})
}

func TestDecodeGrouped(t *testing.T) {
	grouped := DecodeGrouped("ytv=abc123&sct=xyz789&ytv=def456")

	if got := grouped["ytv"]; !reflect.DeepEqual(got, []string{"abc123", "def456"}) {
		t.Errorf("expected ytv values in order, got %v", got)
	}
	if got := grouped["sct"]; !reflect.DeepEqual(got, []string{"xyz789"}) {
		t.Errorf("expected single sct value, got %v", got)
	}
}

func TestAppend(t *testing.T) {
	t.Run("EmptyExisting", func(t *testing.T) {
		if got := Append("", "ytv", "abc"); got != "ytv=abc" {
			t.Errorf("expected %q, got %q", "ytv=abc", got)
		}
	})

	t.Run("JoinsWithAmpersand", func(t *testing.T) {
		if got := Append("ytv=abc", "sct", "xyz"); got != "ytv=abc&sct=xyz" {
			t.Errorf("expected %q, got %q", "ytv=abc&sct=xyz", got)
		}
	})

	t.Run("NoDeduplication", func(t *testing.T) {
		got := Append(Append("", "ytv", "abc"), "ytv", "abc")
		if got != "ytv=abc&ytv=abc" {
			t.Errorf("expected duplicate retained, got %q", got)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	cases := [][]Pair{
		{{Key: "ytv", Value: "abc123"}, {Key: "sct", Value: "xyz789"}, {Key: "ytv", Value: "def456"}},
		{{Key: "q", Value: "hello world"}, {Key: "q", Value: "50% off"}},
		{{Key: "a", Value: ""}, {Key: "b", Value: "x=y&z"}},
		{{Key: "provider code", Value: "id+with+plus"}},
	}

	for _, pairs := range cases {
		decoded := DecodeOrdered(Encode(pairs))
		if !reflect.DeepEqual(decoded, pairs) {
			t.Errorf("round trip failed: %v != %v", decoded, pairs)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Run("FieldOrderIndependent", func(t *testing.T) {
		a := Canonical(map[string][]string{"sct": {"x"}, "ytv": {"a", "b"}})
		b := Canonical(map[string][]string{"ytv": {"a", "b"}, "sct": {"x"}})
		if a != b {
			t.Errorf("canonical strings differ: %q vs %q", a, b)
		}
		if a != "sct=x&ytv=a&ytv=b" {
			t.Errorf("unexpected canonical form %q", a)
		}
	})

	t.Run("EmptyFields", func(t *testing.T) {
		if got := Canonical(map[string][]string{}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("SkipsEmptyFieldNames", func(t *testing.T) {
		if got := Canonical(map[string][]string{"": {"x"}}); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
