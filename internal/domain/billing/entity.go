package billing

type InvoiceItem struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	HSNCode         string  `json:"hsnCode,omitempty"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	DiscountPercent float64 `json:"discountPercent"`
	TaxPercent      float64 `json:"taxPercent"`
}

type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`
	BranchID      string        `json:"branchId"`
	BranchName    string        `json:"branchName"`
	ClientID      string        `json:"clientId"`
	ClientName    string        `json:"clientName"`
	ClientGSTIN   string        `json:"clientGstin,omitempty"`
	Items         []InvoiceItem `json:"items"`
	SubTotal      float64       `json:"subTotal"`
	TaxAmount     float64       `json:"taxAmount"`
	GrandTotal    float64       `json:"grandTotal"`
	Status        string        `json:"status"`
	Archived      bool          `json:"archived,omitempty"`
}

type Payment struct {
	ID            string  `json:"id"`
	InvoiceID     string  `json:"invoiceId"`
	InvoiceNumber string  `json:"invoiceNumber"`
	ClientName    string  `json:"clientName"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Method        string  `json:"method"`
	Reference     string  `json:"reference,omitempty"`
	Archived      bool    `json:"archived,omitempty"`
}

const (
	InvoiceDraft     = "Draft"
	InvoicePosted    = "Posted"
	InvoicePaid      = "Paid"
	InvoiceCancelled = "Cancelled"
)
