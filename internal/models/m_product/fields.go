package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID    = "product_id"
	ColName         = "name"
	ColImageURL     = "image_url"
	ColCount        = "count"
	ColWidth        = "width"
	ColHeight       = "height"
	ColWeight       = "weight"
	ColCommentsJSON = "comments_json"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ColProductID,
	ColName,
	ColImageURL,
	ColCount,
	ColWidth,
	ColHeight,
	ColWeight,
	ColCommentsJSON,
}
