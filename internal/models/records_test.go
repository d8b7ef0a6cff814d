package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	at := time.Date(2024, time.March, 9, 23, 59, 1, 5, time.UTC)
	d := NewDate(at)

	assert.Equal(t, "2024-03-09", d.String())
	assert.Zero(t, d.Hour())
	assert.Zero(t, d.Nanosecond())
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(NewDate(time.Date(2024, time.December, 1, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-01"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-02-28"`), &d))
	assert.Equal(t, "2025-02-28", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"28/02/2025"`), &d))
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(Product{ID: 1, Name: "Books - Novel", Quantity: 3, Price: decimal.NewFromInt(450)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":450`)
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Text
	}{
		{"string", `"12"`, "12"},
		{"number", `12.5`, "12.5"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
		{"whitespace kept", `"  "`, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad Text
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestNewProduct_Decode(t *testing.T) {
	var p NewProduct
	err := json.Unmarshal([]byte(`{"name":"Lamp","quantity":3,"price":"$19.99"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, Text("Lamp"), p.Name)
	assert.Equal(t, Text("3"), p.Quantity)
	assert.Equal(t, "$19.99", p.Price.Trimmed())
	assert.True(t, p.Category.Empty())
}
