package schema

// SellerStoreLinkTable represents the 'seller.storelink' table
type SellerStoreLinkTable struct {
	Table     string
	StoreID   string
	AccountID string
	Name      string
	Slug      string
	CreatedAt string
	DeletedAt string
}

// SellerStoreLink is the schema definition for seller.storelink
var SellerStoreLink = SellerStoreLinkTable{
	Table:     "seller.storelink",
	StoreID:   "storeid",
	AccountID: "accountid",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
	DeletedAt: "deletedat",
}

// LinkColumns returns the columns read to build a store link, in scan order
func (t SellerStoreLinkTable) LinkColumns() []string {
	return []string{t.StoreID, t.Name, t.Slug}
}
