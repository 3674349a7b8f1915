package models

import "testing"

func TestColumnsOrder(t *testing.T) {
	want := []string{
		"RFQ_ID", "Title", "Buyer_Name", "Buyer_Image", "Inquiry_Time",
		"Quotes_Left", "Country", "Quantity_Required", "Email_Confirmed",
		"Experienced", "Completed", "Typical_Reply", "Interactive",
		"Inquiry_URL", "Inquiry_Date", "Scraping_Date",
	}
	got := Columns()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRowMatchesColumns(t *testing.T) {
	two := 2
	rec := ListingRecord{
		ID:             "100500",
		Title:          "Frozen chicken paws",
		BuyerName:      "Gulf Star Trading",
		QuotesLeft:     &two,
		Country:        "UAE",
		Quantity:       "500 pieces",
		EmailConfirmed: true,
		ExtractedAt:    "2025-03-14 09:30:00",
	}
	row := rec.Row()
	if len(row) != len(Columns()) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(Columns()))
	}
	if row[0] != "100500" || row[1] != "Frozen chicken paws" || row[6] != "UAE" {
		t.Errorf("row = %v", row)
	}
	if row[5] != "2" {
		t.Errorf("Quotes_Left cell = %q, want 2", row[5])
	}
	if row[8] != "Yes" || row[9] != "No" {
		t.Errorf("badge cells = %q, %q", row[8], row[9])
	}
}

// A known-zero quote count renders as "0"; an unknown one renders empty.
func TestRowQuotesZeroVsUnknown(t *testing.T) {
	zero := 0
	withZero := ListingRecord{QuotesLeft: &zero}.Row()
	if withZero[5] != "0" {
		t.Errorf("zero count cell = %q, want 0", withZero[5])
	}
	unknown := ListingRecord{}.Row()
	if unknown[5] != "" {
		t.Errorf("unknown count cell = %q, want empty", unknown[5])
	}
}
