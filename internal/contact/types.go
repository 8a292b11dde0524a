package contact

// Row is one entry of the contact list. Filename identifies the card on the
// server and is the key used to fetch its raw and structured forms.
type Row struct {
	FullName   string `json:"fullname"`
	FamilyName string `json:"family_name"`
	FirstName  string `json:"first_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Filename   string `json:"filename"`
}

// Name is the structured name of a contact.
type Name struct {
	GivenName  string
	FamilyName string
}

// Address is one postal address. Empty components are omitted on the wire.
type Address struct {
	POBox        string `json:",omitempty"`
	ExtendedAddr string `json:",omitempty"`
	Street       string `json:",omitempty"`
	Locality     string `json:",omitempty"`
	Region       string `json:",omitempty"`
	PostalCode   string `json:",omitempty"`
	Country      string `json:",omitempty"`
}

// Cells returns the address components in display order.
func (a Address) Cells() []string {
	return []string{a.POBox, a.ExtendedAddr, a.Street, a.Locality, a.Region, a.PostalCode, a.Country}
}

// Value is a single repeated value such as a phone number or an email address.
type Value struct {
	Value string
}

// Detail is the structured form of a single contact.
type Detail struct {
	FullName   string
	Name       Name
	NickName   string
	Birthday   string
	Address    []Address `json:",omitempty"`
	Tel        []Value   `json:",omitempty"`
	Email      []Value   `json:",omitempty"`
	Categories string
	Uid        string
	Url        string
}

// Row derives the list entry for a card stored under filename.
func (d *Detail) Row(filename string) Row {
	row := Row{
		FullName:   d.FullName,
		FamilyName: d.Name.FamilyName,
		FirstName:  d.Name.GivenName,
		Filename:   filename,
	}
	if len(d.Tel) > 0 {
		row.Phone = d.Tel[0].Value
	}
	if len(d.Email) > 0 {
		row.Email = d.Email[0].Value
	}
	return row
}
