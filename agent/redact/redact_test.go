package redact

import (
	"strings"
	"testing"
)

func TestCustomerStripsTransactionInternals(t *testing.T) {
	t.Parallel()

	internal := "ORDER CONFIRMATION\n\n" +
		"Cardstock: 150 units sold for $20.25\n" +
		"Transaction ID: 42\n\n" +
		"TOTAL SALE: $20.25\n" +
		"Updated Cash Balance: $45,230.50\n\n" +
		"Thank you for your business!"

	got := Customer(internal)

	for _, banned := range []string{"Transaction ID", "Cash Balance", "45,230.50"} {
		if strings.Contains(got, banned) {
			t.Errorf("redacted response still contains %q:\n%s", banned, got)
		}
	}
	for _, kept := range []string{"150 units sold for $20.25", "Thank you for your business!"} {
		if !strings.Contains(got, kept) {
			t.Errorf("redacted response lost %q:\n%s", kept, got)
		}
	}
}

func TestCustomerStripsErrorTraces(t *testing.T) {
	t.Parallel()

	got := Customer("We hit a problem.\nERROR: dial tcp 127.0.0.1:5432: connection refused\nPlease retry.")
	if strings.Contains(got, "dial tcp") {
		t.Fatalf("raw error trace leaked: %s", got)
	}
	if !strings.Contains(got, "Please retry.") {
		t.Fatalf("surrounding text lost: %s", got)
	}
}

func TestCustomerStripsSupplierOrderInternals(t *testing.T) {
	t.Parallel()

	got := Customer("SUPPLIER ORDER PLACED (ID: 7)\nQuantity: 500 units\nExpected Delivery: 2025-01-19\n")
	if strings.Contains(got, "SUPPLIER ORDER PLACED") || strings.Contains(got, "Expected Delivery: 2025-01-19") {
		t.Fatalf("supplier internals leaked: %s", got)
	}
}

func TestCustomerCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	got := Customer("line one\nTransaction ID: 9\n\n\n\nline two")
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank runs not collapsed: %q", got)
	}
}

func TestCustomerPassesCleanTextVerbatim(t *testing.T) {
	t.Parallel()

	clean := "QUOTE FOR YOUR ORDER\n\nCardstock: 150 units @ $0.15 = $20.25\n\nThis quote is valid for 30 days."
	if got := Customer(clean); got != clean {
		t.Fatalf("clean text modified:\n%q\n!=\n%q", got, clean)
	}
}
