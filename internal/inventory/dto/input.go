package dto

type AdjustStockInput struct {
	StoreID        string
	ProductID      string
	QuantityChange int // signed; sales are negative
	Reason         string
	ReferenceType  string
	ReferenceID    string
	UserID         string
}
