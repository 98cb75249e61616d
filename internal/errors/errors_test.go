package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestMapErrorMessage(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewMapError(CacheWriteFailed, "failed to write scan cache", cause, nil)

	msg := err.Error()
	if !strings.Contains(msg, "CACHE_WRITE_FAILED") {
		t.Errorf("message missing code: %s", msg)
	}
	if !strings.Contains(msg, "disk full") {
		t.Errorf("message missing cause: %s", msg)
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should unwrap")
	}
}

func TestMapErrorWithoutCause(t *testing.T) {
	err := NewMapError(InternalError, "something odd", nil, nil)
	if strings.Contains(err.Error(), "<nil>") {
		t.Errorf("nil cause leaked into message: %s", err.Error())
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	fixes := GetSuggestedFixes(CacheCorrupt)
	if len(fixes) == 0 {
		t.Fatal("CACHE_CORRUPT should carry a suggested fix")
	}
	if fixes[0].Type != RunCommand || fixes[0].Command == "" {
		t.Errorf("unexpected fix: %+v", fixes[0])
	}

	if fixes := GetSuggestedFixes(ScanFailed); fixes != nil {
		t.Errorf("unmapped code should have no fixes, got %+v", fixes)
	}
}

func TestWithDetails(t *testing.T) {
	err := NewMapError(IndexWriteFailed, "write failed", nil, nil).WithDetails("/r/api")
	if err.Details != "/r/api" {
		t.Errorf("details = %v", err.Details)
	}
}
