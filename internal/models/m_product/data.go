package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// expected keys are the column names declared in fields.go
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map should NOT include the product_id key (we accept productID separately).
func UpdateMutation(productID int64, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// DeleteMutation removes a product row. Spanner treats a missing key as a no-op.
func DeleteMutation(productID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

// BuildValuesMap prepares the mutable product columns. commentsJSON is the
// encoded comment collection.
func BuildValuesMap(name, imageURL string, count int64, width, height float64, weight, commentsJSON string, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColName:         name,
		ColImageURL:     imageURL,
		ColCount:        count,
		ColWidth:        width,
		ColHeight:       height,
		ColWeight:       weight,
		ColCommentsJSON: commentsJSON,
		ColUpdatedAt:    updatedAt,
	}
}

// BuildInsertMap adds the key and creation stamp to BuildValuesMap.
func BuildInsertMap(productID int64, name, imageURL string, count int64, width, height float64, weight, commentsJSON string, createdAt time.Time) map[string]interface{} {
	m := BuildValuesMap(name, imageURL, count, width, height, weight, commentsJSON, createdAt)
	m[ColProductID] = productID
	m[ColCreatedAt] = createdAt
	return m
}
