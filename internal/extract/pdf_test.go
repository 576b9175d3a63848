package extract

import (
	"testing"
)

func TestPDFMalformedInput(t *testing.T) {
	if _, err := PDF([]byte("this is not a pdf")); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestPDFEmptyInput(t *testing.T) {
	if _, err := PDF(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
