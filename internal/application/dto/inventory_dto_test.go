package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker-api/internal/application/dto"
)

func TestAdjustStockRequest_QuantityText(t *testing.T) {
	cases := []struct {
		body string
		want *string
	}{
		{`{"adjustment_type":"add","quantity":5}`, strPtr("5")},
		{`{"adjustment_type":"add","quantity":"7"}`, strPtr("7")},
		{`{"adjustment_type":"add","quantity":"abc"}`, strPtr("abc")},
		{`{"adjustment_type":"add","quantity":2.5}`, strPtr("2.5")},
		{`{"adjustment_type":"add","quantity":null}`, nil},
		{`{"adjustment_type":"add"}`, nil},
	}
	for _, tc := range cases {
		var req dto.AdjustStockRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
		assert.Equal(t, tc.want, req.QuantityText(), tc.body)
	}
}

func strPtr(s string) *string { return &s }
