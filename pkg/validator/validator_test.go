package validatorPkg

import (
	"github.com/shopspring/decimal"
	"testing"
)

type amountRequest struct {
	Amount decimal.Decimal `validate:"required,gt=0"`
}

func TestDecimalValidation(t *testing.T) {
	validate := New()

	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"12.50", false},
		{"0.01", false},
		{"0", true},
		{"-3", true},
	}
	for _, tt := range tests {
		err := validate.Struct(amountRequest{Amount: decimal.RequireFromString(tt.amount)})
		if (err != nil) != tt.wantErr {
			t.Errorf("amount %s: err = %v, wantErr %v", tt.amount, err, tt.wantErr)
		}
	}
}
