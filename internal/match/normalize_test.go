package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"SetFirstName", "setfirstname"},
		{"XMLParser", "xmlparser"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestExportedIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"first_name", "FirstName"},
		{"createdAt", "CreatedAt"},
		{"id", "Id"},
		{"user.email", "UserEmail"},
		{"2fa_code", "X2faCode"},
		{"price (cents)", "PriceCents"},
		{"__", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExportedIdent(tt.input))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Customer", "customer"},
		{"CustomerOrder", "customer_order"},
		{"HTTPRequest", "http_request"},
		{"AllTypes", "all_types"},
		{"V2Record", "v2_record"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}
