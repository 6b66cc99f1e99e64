package output

import (
	"strings"
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{"json", true},
		{"table", true},
		{"text", true},
		{"xml", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateFormat(tt.format); got != tt.want {
			t.Errorf("ValidateFormat(%q) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestFormatAsJSON(t *testing.T) {
	got, err := FormatAsJSON(map[string]string{"key": "value"})
	if err != nil {
		t.Fatalf("FormatAsJSON failed: %v", err)
	}
	if !strings.Contains(got, `"key":"value"`) {
		t.Errorf("FormatAsJSON = %q", got)
	}
}

func TestFormatAsPrettyJSON(t *testing.T) {
	got, err := FormatAsPrettyJSON(map[string]string{"key": "value"})
	if err != nil {
		t.Fatalf("FormatAsPrettyJSON failed: %v", err)
	}
	if !strings.Contains(got, "\n") {
		t.Error("pretty JSON should be indented across lines")
	}
	if !strings.Contains(got, `"key": "value"`) {
		t.Errorf("FormatAsPrettyJSON = %q", got)
	}
}

func TestFormatAsJSONUnmarshalable(t *testing.T) {
	if _, err := FormatAsJSON(make(chan int)); err == nil {
		t.Error("unmarshalable value should error")
	}
}
