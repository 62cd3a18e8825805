package logging

import "testing"

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(5)

	if !s.ShouldLog(0, "encode") {
		t.Fatalf("first event should log")
	}
	if s.ShouldLog(2, "encode") {
		t.Fatalf("same bucket should not log")
	}
	if !s.ShouldLog(5, "encode") {
		t.Fatalf("crossing a bucket boundary should log")
	}
	if !s.ShouldLog(27, "encode") {
		t.Fatalf("jumping several buckets should log")
	}
	if s.ShouldLog(26, "encode") {
		t.Fatalf("percent moving backwards within bucket should not log")
	}
	if !s.ShouldLog(100, "encode") {
		t.Fatalf("completion should log")
	}
}

func TestProgressSamplerPhaseChange(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(50, "encode")
	if !s.ShouldLog(50, "finalize") {
		t.Fatalf("phase change should log even within same bucket")
	}
}

func TestProgressSamplerUnknownPercent(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(-1, "probe") {
		t.Fatalf("unknown percent with new phase should log")
	}
	if s.ShouldLog(-1, "probe") {
		t.Fatalf("unknown percent with same phase should not log")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(5)
	s.ShouldLog(95, "encode")
	s.Reset()
	if !s.ShouldLog(0, "encode") {
		t.Fatalf("after reset the first event should log again")
	}
}

func TestNilSamplerAlwaysLogs(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(1, "x") {
		t.Fatalf("nil sampler must not suppress")
	}
	s.Reset()
}
