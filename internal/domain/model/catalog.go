package model

import "github.com/shopspring/decimal"

// Client is a shop customer account.
type Client struct {
	Username      string
	Name          string
	FirstSurname  string
	SecondSurname string
	Email         string
	PasswordHash  string
	ImageURL      string
	Phone         string
	Address       string
}

// Product is a catalog entry priced per unit.
type Product struct {
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	ImageURL    string
}
