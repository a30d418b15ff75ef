package model

const (
	EntityName = "identifier"

	Length   = 6
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// MaxSamples bounds how many candidates one allocation may draw.
	MaxSamples = 16
	// MaxInsertAttempts bounds how often a caller re-allocates after its
	// insert lost a race on a primary key.
	MaxInsertAttempts = 3
)

// ExistsQuery checks a candidate against every table drawing from the shared
// identifier space.
const ExistsQuery = `SELECT EXISTS (
	SELECT 1 FROM main.clients WHERE client_id = $1
	UNION ALL
	SELECT 1 FROM main.booking_requests WHERE booking_id = $1
	UNION ALL
	SELECT 1 FROM main.invoices WHERE invoice_id = $1
	UNION ALL
	SELECT 1 FROM main.invoice_items WHERE invoice_item_id = $1
)`
