package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0 (got %d)", c.Server.RateLimit)
	}

	if err := c.Menu.validate(); err != nil {
		return fmt.Errorf("menu: %w", err)
	}

	if err := c.Activity.validate(); err != nil {
		return fmt.Errorf("activity: %w", err)
	}

	if c.Delivery.UsesKafka() {
		if len(c.Delivery.Brokers()) == 0 {
			return fmt.Errorf("delivery: kafka_brokers lists no addresses")
		}
		if strings.TrimSpace(c.Delivery.KafkaTopic) == "" {
			return fmt.Errorf("delivery: kafka_topic is required when kafka_brokers is set")
		}
	}

	return nil
}

func (m *MenuConfig) validate() error {
	if m.DialPrefixLength <= 0 {
		return fmt.Errorf("dial_prefix_length must be > 0 (got %d)", m.DialPrefixLength)
	}
	if m.ScreenLimit < 40 {
		return fmt.Errorf("screen_limit must be >= 40 (got %d)", m.ScreenLimit)
	}
	if m.PointerTTL <= 0 {
		return fmt.Errorf("pointer_ttl must be > 0 (got %s)", m.PointerTTL)
	}
	if m.MaxListItems <= 0 || m.MaxListItems > 8 {
		return fmt.Errorf("max_list_items must be in 1..8 (got %d)", m.MaxListItems)
	}
	return nil
}

func (a *ActivityConfig) validate() error {
	if a.DedupWindow < 0 {
		return fmt.Errorf("dedup_window must be >= 0 (got %s)", a.DedupWindow)
	}
	if a.MaxLabelLength <= 0 {
		return fmt.Errorf("max_label_length must be > 0 (got %d)", a.MaxLabelLength)
	}
	if a.MaxVoteOptions < 2 {
		return fmt.Errorf("max_vote_options must be >= 2 (got %d)", a.MaxVoteOptions)
	}

	offsets, err := ParseDurations(a.ReminderOffsetsRaw)
	if err != nil {
		return fmt.Errorf("reminder_offsets: %w", err)
	}
	for _, off := range offsets {
		if off <= 0 {
			return fmt.Errorf("reminder_offsets: %s must be > 0", off)
		}
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] > offsets[j] })
	a.ReminderOffsets = offsets

	return nil
}

// ParseDurations parses a comma-separated string of durations (e.g. "24h,1h")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseDurations(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		out = append(out, d)
	}

	return out, nil
}
