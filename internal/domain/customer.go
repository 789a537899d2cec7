package domain

// CustomerDetails are the contact and delivery fields of an order.
type CustomerDetails struct {
	FullName       string `json:"full_name" form:"full_name" validate:"required,max=50"`
	Email          string `json:"email" form:"email" validate:"required,email,max=254"`
	PhoneNumber    string `json:"phone_number" form:"phone_number" validate:"required,max=20"`
	Country        string `json:"country" form:"country" validate:"required,max=40"`
	Postcode       string `json:"postcode" form:"postcode" validate:"max=20"`
	TownOrCity     string `json:"town_or_city" form:"town_or_city" validate:"required,max=40"`
	StreetAddress1 string `json:"street_address1" form:"street_address1" validate:"required,max=80"`
	StreetAddress2 string `json:"street_address2" form:"street_address2" validate:"max=80"`
	County         string `json:"county" form:"county" validate:"max=80"`
}
