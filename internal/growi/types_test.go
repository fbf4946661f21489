package growi

import (
	"encoding/json"
	"testing"
)

func TestIsJSONNull(t *testing.T) {
	tests := []struct {
		name     string
		raw      json.RawMessage
		expected bool
	}{
		{"nil", nil, true},
		{"empty", json.RawMessage{}, true},
		{"null literal", json.RawMessage(`null`), true},
		{"null with whitespace", json.RawMessage(" null "), true},
		{"string", json.RawMessage(`"null"`), false},
		{"object", json.RawMessage(`{}`), false},
		{"number", json.RawMessage(`0`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isJSONNull(tt.raw); got != tt.expected {
				t.Errorf("isJSONNull(%s) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name     string
		raw      json.RawMessage
		expected string
	}{
		{"absent", nil, ""},
		{"null", json.RawMessage(`null`), ""},
		{"plain string", json.RawMessage(`"access denied"`), "access denied"},
		{"object with message", json.RawMessage(`{"code": "forbidden", "message": "access denied"}`), "access denied"},
		{"object without message", json.RawMessage(`{"code": "forbidden"}`), `{"code": "forbidden"}`},
		{"array of messages", json.RawMessage(`[{"message": "a"}, {"message": "b"}]`), "a; b"},
		{"array with empty entries", json.RawMessage(`[{"message": "a"}, {"message": ""}]`), "a"},
		{"array without messages", json.RawMessage(`[{"code": "x"}]`), `[{"code": "x"}]`},
		{"number falls back to raw", json.RawMessage(`42`), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.raw); got != tt.expected {
				t.Errorf("errorText(%s) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestPageListEnvelope_AbsentVersusEmpty(t *testing.T) {
	var absent pageListEnvelope
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if absent.Pages != nil {
		t.Error("absent pages field should decode to nil")
	}

	var empty pageListEnvelope
	if err := json.Unmarshal([]byte(`{"pages": []}`), &empty); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if empty.Pages == nil {
		t.Error("empty pages array should decode to a non-nil slice")
	}
	if len(empty.Pages) != 0 {
		t.Errorf("len = %d, want 0", len(empty.Pages))
	}
}

func TestPageEnvelope_OKTristate(t *testing.T) {
	var withOK pageEnvelope
	if err := json.Unmarshal([]byte(`{"ok": false}`), &withOK); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if withOK.OK == nil || *withOK.OK {
		t.Error("ok:false should decode to a non-nil false pointer")
	}

	var withoutOK pageEnvelope
	if err := json.Unmarshal([]byte(`{"page": {}}`), &withoutOK); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	// An absent ok field is not a failure signal
	if withoutOK.OK != nil {
		t.Error("absent ok field should decode to nil")
	}
}

func TestCreatePayload_Shape(t *testing.T) {
	payload, err := json.Marshal(createPayload{Path: "/p", Body: "b", Grant: DefaultGrant})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"path":"/p","body":"b","grant":1}`
	if string(payload) != want {
		t.Errorf("payload = %s, want %s", payload, want)
	}
}
