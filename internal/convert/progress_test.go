package convert

import (
	"context"
	"testing"
	"time"
)

func TestTrackerPercentCapped(t *testing.T) {
	start := time.Now()
	track := newTracker(1000, start)

	snap := track.observe(500, 0, start.Add(time.Second))
	if snap.Percent != 50 {
		t.Fatalf("percent = %v, want 50", snap.Percent)
	}

	snap = track.observe(2000, 0, start.Add(2*time.Second))
	if snap.Percent != 99 {
		t.Fatalf("percent must cap at 99, got %v", snap.Percent)
	}
}

func TestTrackerZeroPredicted(t *testing.T) {
	start := time.Now()
	track := newTracker(0, start)
	snap := track.observe(500, 0, start.Add(time.Second))
	if snap.Percent != 0 {
		t.Fatalf("percent = %v with no prediction", snap.Percent)
	}
	if snap.ETA != 0 {
		t.Fatalf("no ETA expected without percent, got %v", snap.ETA)
	}
}

func TestTrackerETAExtrapolation(t *testing.T) {
	start := time.Now()
	track := newTracker(1000, start)
	// 25% done after 10s: 30s should remain.
	snap := track.observe(250, 0, start.Add(10*time.Second))
	if got := snap.ETA.Round(time.Second); got != 30*time.Second {
		t.Fatalf("ETA = %v, want 30s", got)
	}
}

func TestTrackerEncodeSpeed(t *testing.T) {
	start := time.Now()
	track := newTracker(1000, start)
	// 20 media seconds encoded in 10 wall seconds: 2x.
	snap := track.observe(100, 20_000_000, start.Add(10*time.Second))
	if snap.EncodeSpeed < 1.99 || snap.EncodeSpeed > 2.01 {
		t.Fatalf("encode speed = %v, want ~2.0", snap.EncodeSpeed)
	}
	if snap.SpeedLabel() != "2.00x" {
		t.Fatalf("speed label = %q", snap.SpeedLabel())
	}
}

func TestTrackerThroughput(t *testing.T) {
	start := time.Now()
	track := newTracker(100<<20, start)
	track.observe(10<<20, 0, start.Add(time.Second))
	snap := track.observe(20<<20, 0, start.Add(2*time.Second))
	// 10 MiB grown over one second.
	if snap.MBPerSec < 9.9 || snap.MBPerSec > 10.1 {
		t.Fatalf("MBPerSec = %v, want ~10", snap.MBPerSec)
	}
}

func TestSnapshotSpeedLabelFallbacks(t *testing.T) {
	if got := (Snapshot{}).SpeedLabel(); got != "..." {
		t.Fatalf("empty snapshot label = %q", got)
	}
	if got := (Snapshot{MBPerSec: 12.34}).SpeedLabel(); got != "12.3 MB/s" {
		t.Fatalf("throughput label = %q", got)
	}
	if got := (Snapshot{MBPerSec: 12.34, EncodeSpeed: 1.5}).SpeedLabel(); got != "1.50x" {
		t.Fatalf("encode speed must win: %q", got)
	}
}

func TestPredictSizeCopy(t *testing.T) {
	info := MediaInfo{SizeBytes: 1000}
	got := PredictSize(context.Background(), "ffprobe", info, Plan{Mode: ModeCopy})
	if got != 900 {
		t.Fatalf("copy prediction = %d, want 900", got)
	}
}
