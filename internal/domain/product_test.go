package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductLinkFor(t *testing.T) {
	product := Product{
		ID:   1,
		Name: "Widget",
		RawMaterials: []ProductRawMaterialLink{
			{QuantityRequired: 4, RawMaterial: RawMaterial{ID: 7, Name: "Steel", StockQuantity: 40}},
		},
	}

	link, ok := product.LinkFor(7)
	assert.True(t, ok)
	assert.Equal(t, 4, link.QuantityRequired)
	assert.Equal(t, "Steel", link.RawMaterial.Name)

	_, ok = product.LinkFor(99)
	assert.False(t, ok)

	assert.True(t, product.HasLink(7))
	assert.False(t, product.HasLink(99))
}

func TestProductClone_DoesNotAliasLinks(t *testing.T) {
	product := Product{
		ID: 1,
		RawMaterials: []ProductRawMaterialLink{
			{QuantityRequired: 4, RawMaterial: RawMaterial{ID: 7}},
		},
	}

	clone := product.Clone()
	clone.RawMaterials[0].QuantityRequired = 99

	assert.Equal(t, 4, product.RawMaterials[0].QuantityRequired)
}

func TestProductClone_NilLinksStayNil(t *testing.T) {
	clone := Product{ID: 1}.Clone()
	assert.Nil(t, clone.RawMaterials)
}

func TestProductJSONFieldNames(t *testing.T) {
	product := Product{
		ID:    3,
		Name:  "Widget",
		Price: decimal.NewFromFloat(12.5),
		Stock: 2,
		RawMaterials: []ProductRawMaterialLink{
			{QuantityRequired: 4, RawMaterial: RawMaterial{ID: 7, Name: "Steel", StockQuantity: 40}},
		},
	}

	data, err := json.Marshal(product)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "productRawMaterials")
	links := decoded["productRawMaterials"].([]interface{})
	link := links[0].(map[string]interface{})
	assert.Contains(t, link, "quantityRequired")
	assert.Contains(t, link, "rawMaterial")
}
