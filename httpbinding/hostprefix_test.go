package httpbinding

import "testing"

func TestReplaceHostLabel(t *testing.T) {
	got := replaceHostLabel("{accountId}.service.", "accountId", "12345")
	if got != "12345.service." {
		t.Errorf("expect substituted prefix, got %q", got)
	}
}

func TestResolveHostPrefix_ValidLabels(t *testing.T) {
	if err := ResolveHostPrefix("12345.service."); err != nil {
		t.Errorf("expect valid prefix, got %v", err)
	}
}

func TestResolveHostPrefix_RejectsInvalidLabel(t *testing.T) {
	if err := ResolveHostPrefix("inv_alid.service."); err == nil {
		t.Error("expect error for invalid DNS label")
	}
}
