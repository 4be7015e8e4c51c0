package models

// Row is one record of the postal dataset: a 7-digit postal code together
// with the administrative hierarchy it covers. Rows are supplied fully
// materialized by a dataset collaborator; the core never touches storage.
type Row struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	District   string `json:"district"`
}

// ParsedAddress is the normalized segmentation of one input address.
// Remainder holds whatever trails the district (block and lot numbers,
// stripped building tokens); LotNumber is set only when a trailing
// "N番地" token was preserved because it may select a dedicated code.
type ParsedAddress struct {
	Prefecture string
	City       string
	District   string
	Remainder  string
	LotNumber  string
}

// Match is a successful resolution result.
type Match struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	District   string `json:"district"`
}
