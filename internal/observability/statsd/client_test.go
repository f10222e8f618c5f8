package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestSanitizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  exportctl  ": "exportctl",
		"..foo..":       "foo",
		".":             "",
		"":              "",
	}

	for input, want := range tests {
		if got := sanitizePrefix(input); got != want {
			t.Fatalf("sanitizePrefix(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" monitor/events ": "monitor_events",
		"foo..bar":         "foo.bar",
		"multi  space":     "multi__space",
		"jobs/cancel/id":   "jobs_cancel_id",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":    "prod",
		" zone ": " US-CAL-CISO ",
	}
	local := map[string]string{
		"kind": " completed ",
		"":     "ignored",
		"env":  "stage",
	}

	got := formatTags(global, local)
	want := "|#env:stage,kind:completed,zone:US-CAL-CISO"
	if got != want {
		t.Fatalf("formatTags() = %q, want %q", got, want)
	}

	if formatTags(nil, nil) != "" {
		t.Fatal("formatTags(nil, nil) should be empty")
	}
}

func TestDisabledClientDropsMetrics(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Enabled() {
		t.Fatal("client should be disabled")
	}

	// Must not panic, even on a nil client.
	client.Count("monitor.events", 1, nil)
	var nilClient *Client
	nilClient.Gauge("jobs.running", 2, nil)
	nilClient.Timing("jobs.duration", time.Second, nil)
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestClientDefaultsToOrchestratorNamespace(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: pc.LocalAddr().String(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	client.Gauge("jobs.running", 3, nil)

	if derr := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); derr != nil {
		t.Fatalf("deadline: %v", derr)
	}
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if line := string(buf[:n]); line != DefaultPrefix+".jobs.running:3|g" {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestClientEmitsLineProtocol(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: pc.LocalAddr().String(),
		Prefix:  "exportctl",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	client.Count("monitor.events", 1, map[string]string{"kind": "completed"})

	if derr := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); derr != nil {
		t.Fatalf("deadline: %v", derr)
	}
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	line := string(buf[:n])
	if !strings.HasPrefix(line, "exportctl.monitor.events:1|c") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "|#kind:completed") {
		t.Fatalf("missing tags in %q", line)
	}
}
