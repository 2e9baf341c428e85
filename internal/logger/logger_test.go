package logger

import (
	"testing"
)

func TestSanitizePayloadMasksSecrets(t *testing.T) {
	payload := map[string]any{
		"accountId":  "000000042",
		"pin":        "1234",
		"PIN_HASH":   "$2a$10$abcdef",
		"cardNumber": "4000008449433403",
		"nested": map[string]any{
			"card_pin": "9999",
			"amount":   50,
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("SanitizePayload returned %T, want map", SanitizePayload(payload))
	}

	if sanitized["accountId"] != "000000042" {
		t.Errorf("accountId = %v, want preserved", sanitized["accountId"])
	}
	for _, key := range []string{"pin", "PIN_HASH", "cardNumber"} {
		if sanitized[key] != "******" {
			t.Errorf("%s = %v, want masked", key, sanitized[key])
		}
	}

	nested, ok := sanitized["nested"].(map[string]any)
	if !ok {
		t.Fatalf("nested payload lost in sanitization: %v", sanitized["nested"])
	}
	if nested["card_pin"] != "******" {
		t.Errorf("nested card_pin = %v, want masked", nested["card_pin"])
	}
	if nested["amount"] != float64(50) {
		t.Errorf("nested amount = %v, want 50", nested["amount"])
	}
}
