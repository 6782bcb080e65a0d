package models

// Bank describes a known Brazilian bank for account branding (logo and
// colors). The catalog is static: accounts reference a bank by its string
// ID through Account.BankID, and unknown IDs simply render without branding.
type Bank struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// Banks is the built-in catalog, ordered by display name.
var Banks = []Bank{
	{ID: "bb", Code: "001", Name: "Banco do Brasil", DisplayName: "BB", PrimaryColor: "#FFCC00", SecondaryColor: "#003399"},
	{ID: "bradesco", Code: "237", Name: "Bradesco", DisplayName: "Bradesco", PrimaryColor: "#CC092F"},
	{ID: "caixa", Code: "104", Name: "Caixa Econômica Federal", DisplayName: "Caixa", PrimaryColor: "#005CA9", SecondaryColor: "#F39200"},
	{ID: "inter", Code: "077", Name: "Banco Inter", DisplayName: "Inter", PrimaryColor: "#FF7A00"},
	{ID: "itau", Code: "341", Name: "Itaú Unibanco", DisplayName: "Itaú", PrimaryColor: "#FF6600", SecondaryColor: "#003399"},
	{ID: "nubank", Code: "260", Name: "Nubank", DisplayName: "Nubank", PrimaryColor: "#8A05BE"},
	{ID: "santander", Code: "033", Name: "Santander", DisplayName: "Santander", PrimaryColor: "#EC0000"},
	{ID: "sicoob", Code: "756", Name: "Sicoob", DisplayName: "Sicoob", PrimaryColor: "#003641", SecondaryColor: "#7DB61C"},
}

// FindBank looks up a bank by ID. Returns nil when the ID is unknown.
func FindBank(id string) *Bank {
	for i := range Banks {
		if Banks[i].ID == id {
			return &Banks[i]
		}
	}
	return nil
}
