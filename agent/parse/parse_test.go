package parse

import (
	"testing"
)

func TestLineItemsBulletedList(t *testing.T) {
	t.Parallel()

	text := "We need supplies for the office:\n" +
		"- 2000 sheets of A4 paper (white)\n" +
		"- 500 units of Envelopes\n" +
		"- 100 sheets of Cardstock, assorted colors\n"

	items := LineItems(text)
	if len(items) != 3 {
		t.Fatalf("expected 3 line items, got %d: %+v", len(items), items)
	}

	want := []struct {
		qty  int
		desc string
	}{
		{2000, "A4 paper"},
		{500, "Envelopes"},
		{100, "Cardstock"},
	}
	for i, w := range want {
		if items[i].Quantity != w.qty || items[i].Description != w.desc {
			t.Errorf("item %d: got %d %q, want %d %q",
				i, items[i].Quantity, items[i].Description, w.qty, w.desc)
		}
	}
}

func TestLineItemsInline(t *testing.T) {
	t.Parallel()

	items := LineItems("I would like to order 150 sheets of Cardstock for a project.")
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d: %+v", len(items), items)
	}
	if items[0].Quantity != 150 || items[0].Description != "Cardstock for a project" {
		t.Errorf("got %d %q", items[0].Quantity, items[0].Description)
	}
}

func TestLineItemsLooseFallback(t *testing.T) {
	t.Parallel()

	// No unit word at all; the loose pattern should still find the pair.
	items := LineItems("Can you quote 500 wedding invitations?")
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d: %+v", len(items), items)
	}
	if items[0].Quantity != 500 || items[0].Description != "wedding invitations" {
		t.Errorf("got %d %q", items[0].Quantity, items[0].Description)
	}
}

func TestLineItemsLooseNotUsedWhenUnitsMatch(t *testing.T) {
	t.Parallel()

	// "3 days" would match the loose pattern, but a unit match elsewhere
	// disables the fallback entirely.
	items := LineItems("Need 200 units of Kraft paper delivered within 3 days")
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d: %+v", len(items), items)
	}
	if items[0].Description != "Kraft paper delivered within 3 days" && items[0].Description != "Kraft paper" {
		t.Errorf("unexpected description %q", items[0].Description)
	}
	if items[0].Quantity != 200 {
		t.Errorf("quantity = %d, want 200", items[0].Quantity)
	}
}

func TestLineItemsStripsParentheticals(t *testing.T) {
	t.Parallel()

	items := LineItems("- 300 sheets of Glossy paper (for brochures)")
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d: %+v", len(items), items)
	}
	if items[0].Description != "Glossy paper" {
		t.Errorf("description = %q, want %q", items[0].Description, "Glossy paper")
	}
}

func TestLineItemsConjunctionNeedsComma(t *testing.T) {
	t.Parallel()

	// Known limitation: without a comma, an "and"-joined request collapses
	// into one line item whose description swallows the second item. The
	// line patterns terminate on newline, comma, or end of text only.
	items := LineItems("Please send 2000 sheets of A4 paper and 300 units of Glossy paper")
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d: %+v", len(items), items)
	}
	if items[0].Quantity != 2000 {
		t.Errorf("quantity = %d, want 2000", items[0].Quantity)
	}
	if items[0].Description != "A4 paper and 300 units of Glossy paper" {
		t.Errorf("description = %q, want the merged remainder", items[0].Description)
	}

	// A comma before the conjunction splits the items correctly.
	items = LineItems("Please send 2000 sheets of A4 paper, and 300 units of Glossy paper")
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d: %+v", len(items), items)
	}
	if items[0].Quantity != 2000 || items[0].Description != "A4 paper" {
		t.Errorf("item 0: got %d %q", items[0].Quantity, items[0].Description)
	}
	if items[1].Quantity != 300 || items[1].Description != "Glossy paper" {
		t.Errorf("item 1: got %d %q", items[1].Quantity, items[1].Description)
	}
}

func TestLineItemsNoMatches(t *testing.T) {
	t.Parallel()

	if items := LineItems("Hello, do you sell paper?"); len(items) != 0 {
		t.Errorf("expected no line items, got %+v", items)
	}
}
