package handlers

import (
	"net/http"

	"github.com/polkiloo/orderdesk/internal/dispatch"
)

// Request field names.
const (
	fieldSheet     = "sheet"
	fieldClient    = "client"
	fieldItems     = "items"
	fieldDiscount  = "discount"
	fieldStatus    = "status"
	fieldColumn    = "column"
	fieldDirection = "direction"
	fieldLimit     = "limit"
	fieldOffset    = "offset"
	fieldTerm      = "term"

	fieldUsername      = "username"
	fieldName          = "name"
	fieldFirstSurname  = "first_surname"
	fieldSecondSurname = "second_surname"
	fieldEmail         = "email"
	fieldPassword      = "password"
	fieldImageURL      = "image_url"
	fieldPhone         = "phone"
	fieldAddress       = "address"
	fieldCredential    = "credential"

	fieldCode        = "code"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldQuantity    = "quantity"
)

var (
	registerOrderCmd = dispatch.Command{
		Name:     "register_order",
		Required: []string{fieldClient, fieldItems, fieldDiscount},
		Status:   http.StatusCreated,
	}
	updateOrderCmd = dispatch.Command{
		Name:     "update_order_status",
		Required: []string{fieldSheet, fieldStatus},
	}
	cancelOrderCmd = dispatch.Command{
		Name:     "cancel_order",
		Required: []string{fieldSheet},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}
	retryCheckoutCmd = dispatch.Command{
		Name:     "retry_checkout",
		Required: []string{fieldSheet},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
		Status:   http.StatusCreated,
	}
	getOrderCmd = dispatch.Command{
		Name:     "get_order",
		Required: []string{fieldSheet},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}
	getOrderDetailsCmd = dispatch.Command{
		Name:     "get_order_details",
		Required: []string{fieldSheet},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}
	getClientOrdersCmd = dispatch.Command{
		Name:     "get_orders_by_client",
		Required: []string{fieldClient},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}
	filterOrdersCmd = dispatch.Command{
		Name:     "filter_orders",
		Required: []string{fieldColumn, fieldDirection, fieldLimit, fieldOffset},
	}
	searchOrdersCmd = dispatch.Command{
		Name:     "search_orders",
		Required: []string{fieldTerm, fieldLimit, fieldOffset},
	}

	registerClientCmd = dispatch.Command{
		Name: "register_client",
		Required: []string{
			fieldUsername, fieldName, fieldFirstSurname, fieldSecondSurname,
			fieldEmail, fieldPassword, fieldImageURL, fieldPhone, fieldAddress,
		},
		Options: dispatch.Options{
			AllowBlank:    true,
			SecretField:   fieldPassword,
			AssetField:    fieldImageURL,
			AssetCategory: "clients",
		},
		Status: http.StatusCreated,
	}
	googleSignInCmd = dispatch.Command{
		Name:     "google_sign_in",
		Required: []string{fieldCredential},
		Options:  dispatch.Options{ExternalIdentity: true},
	}
	getClientCmd = dispatch.Command{
		Name:     "get_client",
		Required: []string{fieldClient},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}

	registerProductCmd = dispatch.Command{
		Name:     "register_product",
		Required: []string{fieldCode, fieldName, fieldDescription, fieldPrice, fieldQuantity, fieldImageURL},
		Options:  dispatch.Options{AssetField: fieldImageURL, AssetCategory: "products"},
		Status:   http.StatusCreated,
	}
	getProductCmd = dispatch.Command{
		Name:     "get_product",
		Required: []string{fieldCode},
		Options:  dispatch.Options{FromPath: true, Unwrap: true},
	}

	loginStaffCmd = dispatch.Command{
		Name:     "login_staff",
		Required: []string{fieldUsername, fieldPassword},
		Options:  dispatch.Options{AllowBlank: true},
	}
	loginClientCmd = dispatch.Command{
		Name:     "login_client",
		Required: []string{fieldUsername, fieldPassword},
		Options:  dispatch.Options{AllowBlank: true},
	}
)
