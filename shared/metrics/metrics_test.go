package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(botVerifications.WithLabelValues(BotResultRejected))
	IncBotVerification(BotResultRejected)

	if got := testutil.ToFloat64(botVerifications.WithLabelValues(BotResultRejected)); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}

	beforeInvoices := testutil.ToFloat64(invoicesWritten.WithLabelValues(InvoiceOpEdit))
	IncInvoiceWrite(InvoiceOpEdit)

	if got := testutil.ToFloat64(invoicesWritten.WithLabelValues(InvoiceOpEdit)); got != beforeInvoices+1 {
		t.Errorf("expected %v, got %v", beforeInvoices+1, got)
	}
}

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/booking/get_pending", "200"))

	ObserveHTTP(http.MethodGet, "/booking/get_pending", http.StatusOK, 15*time.Millisecond)

	if got := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/booking/get_pending", "200")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}
