package domain

import "github.com/shopspring/decimal"

// ProductRawMaterialLink binds a product to one raw material it consumes.
// The embedded RawMaterial is a snapshot as last reported by the server;
// it is replaced wholesale when the owning product is re-fetched, never
// kept live against the raw-materials collection.
type ProductRawMaterialLink struct {
	QuantityRequired int         `json:"quantityRequired"`
	RawMaterial      RawMaterial `json:"rawMaterial"`
}

type Product struct {
	ID           int                      `json:"id"`
	Name         string                   `json:"name"`
	Price        decimal.Decimal          `json:"price"`
	Stock        int                      `json:"stock"`
	RawMaterials []ProductRawMaterialLink `json:"productRawMaterials"`
}

// LinkFor returns the link for the given raw material id, if any.
// Within one product each raw material appears in at most one link.
func (p Product) LinkFor(rawMaterialID int) (ProductRawMaterialLink, bool) {
	for _, link := range p.RawMaterials {
		if link.RawMaterial.ID == rawMaterialID {
			return link, true
		}
	}
	return ProductRawMaterialLink{}, false
}

func (p Product) HasLink(rawMaterialID int) bool {
	_, ok := p.LinkFor(rawMaterialID)
	return ok
}

// Clone returns a value copy whose link slice does not alias the receiver's.
func (p Product) Clone() Product {
	out := p
	if p.RawMaterials != nil {
		out.RawMaterials = make([]ProductRawMaterialLink, len(p.RawMaterials))
		copy(out.RawMaterials, p.RawMaterials)
	}
	return out
}
