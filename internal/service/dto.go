package service

// QuoteRequest represents the quote request payload
type QuoteRequest struct {
	Items    []QuoteItem `json:"items" binding:"required,min=1,dive"`
	ShipTo   ShipTo      `json:"shipTo"`
	Currency *string     `json:"currency,omitempty" binding:"omitempty,display_currency"`
}

type QuoteItem struct {
	ProductType  string   `json:"productType" binding:"required,eq=bonfilet"`
	MessageText  string   `json:"messageText" binding:"min=1,max=40"`
	BodyColor    string   `json:"bodyColor" binding:"required,band_color"`
	BodyColorHex string   `json:"bodyColorHex,omitempty" binding:"required_if=BodyColor custom,band_hex"`
	TextColor    string   `json:"textColor" binding:"required,band_color"`
	TextColorHex string   `json:"textColorHex,omitempty" binding:"required_if=TextColor custom,band_hex"`
	Finish       string   `json:"finish" binding:"required,band_finish"`
	Size         string   `json:"size" binding:"required,band_size"`
	Qty          int      `json:"qty" binding:"min=1,max=99999"`
	Options      []string `json:"options,omitempty" binding:"omitempty,max=20,dive,required,max=64"`
}

type ShipTo struct {
	Country string `json:"country" binding:"required,min=2"`
}
