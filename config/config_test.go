package config

import "testing"

func TestKeywords(t *testing.T) {
	c := &Config{NewsKeywords: "stocks, market ,finance,,economy"}

	keywords := c.Keywords()
	want := []string{"stocks", "market", "finance", "economy"}
	if len(keywords) != len(want) {
		t.Fatalf("Expected %d keywords, got %v", len(want), keywords)
	}
	for i, kw := range want {
		if keywords[i] != kw {
			t.Errorf("Keyword %d: expected %q, got %q", i, kw, keywords[i])
		}
	}
}

func TestPageSizeClamping(t *testing.T) {
	cases := []struct {
		configured int
		want       int
	}{
		{50, 50},
		{100, 100},
		{101, 100},
		{500, 100},
		{0, 100},
		{-1, 100},
	}

	for _, c := range cases {
		cfg := &Config{NewsPageSize: c.configured}
		if got := cfg.PageSize(); got != c.want {
			t.Errorf("PageSize() with %d configured = %d, want %d", c.configured, got, c.want)
		}
	}
}

func TestS3Enabled(t *testing.T) {
	if (&Config{}).S3Enabled() {
		t.Error("S3 must be disabled without a bucket")
	}
	if !(&Config{S3Bucket: "artifacts"}).S3Enabled() {
		t.Error("S3 must be enabled when a bucket is set")
	}
}
