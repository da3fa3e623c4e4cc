package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "10", want: 1000},
		{in: "10.5", want: 1050},
		{in: "10,50", want: 1050},
		{in: "-588,74", want: -58874},
		{in: "1.234,56", want: 123456},
		{in: "1,234.56", want: 123456},
		{in: "1,000", want: 100000},
		{in: "1.234.567,89", want: 123456789},
		{in: "1.234.567", want: 123456700},
		{in: "(12.00)", want: -1200},
		{in: "€ 99,99", want: 9999},
		{in: "$1,500.00", want: 150000},
		{in: "0.005", want: 1},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
