package models

import "strconv"

// ListingRecord is the engine's sole output entity: one extracted RFQ
// listing. String fields use "" for "not found" — never a sentinel value.
type ListingRecord struct {
	// ID identifies the listing. Harvested from the detail URL when the
	// page exposes an rfq_id, otherwise generated from the page-scoped
	// sequence counter plus the capture timestamp (unique within a run).
	ID string

	// Title is the listing headline, capped at 200 characters.
	Title string

	// BuyerName is the buyer or company name, capped at 100 characters.
	BuyerName string

	// BuyerImage is the absolute URL of the buyer's avatar image.
	BuyerImage string

	// InquiryAge is the relative-time phrase ("3 hours ago", "yesterday").
	InquiryAge string

	// QuotesLeft is the number of quote slots remaining. nil means the
	// page did not expose a count; 0 is a real value and is kept distinct.
	QuotesLeft *int

	// Country is the canonical country name ("UAE", "Germany", ...).
	// Tokens that matched a country pattern but have no table entry pass
	// through unchanged.
	Country string

	// Quantity is the requested quantity with its unit ("500 pieces"),
	// capped at 50 characters.
	Quantity string

	// Verification badges derived from keyword membership over the
	// fragment's full text.
	EmailConfirmed bool
	Experienced    bool
	Completed      bool
	TypicalReply   bool
	Interactive    bool

	// DetailURL is the absolute URL of the listing's detail page.
	DetailURL string

	// InquiryDate is an explicit date token found in the fragment, if any.
	InquiryDate string

	// ExtractedAt is the wall-clock assembly time, "2006-01-02 15:04:05".
	// Non-decreasing across one run.
	ExtractedAt string
}

// Columns is the fixed CSV header. Downstream consumers depend on column
// position, not just name — the order here is a stable contract.
func Columns() []string {
	return []string{
		"RFQ_ID", "Title", "Buyer_Name", "Buyer_Image", "Inquiry_Time",
		"Quotes_Left", "Country", "Quantity_Required", "Email_Confirmed",
		"Experienced", "Completed", "Typical_Reply", "Interactive",
		"Inquiry_URL", "Inquiry_Date", "Scraping_Date",
	}
}

// Row renders the record as one CSV row in Columns order.
func (r ListingRecord) Row() []string {
	quotes := ""
	if r.QuotesLeft != nil {
		quotes = strconv.Itoa(*r.QuotesLeft)
	}
	return []string{
		r.ID, r.Title, r.BuyerName, r.BuyerImage, r.InquiryAge,
		quotes, r.Country, r.Quantity, yesNo(r.EmailConfirmed),
		yesNo(r.Experienced), yesNo(r.Completed), yesNo(r.TypicalReply),
		yesNo(r.Interactive), r.DetailURL, r.InquiryDate, r.ExtractedAt,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
