package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Page is one storefront page: an ordered list of content blocks.
type Page struct {
	BaseModel
	StoreID string        `db:"store_id" json:"store_id"`
	Slug    string        `db:"slug" json:"slug"`
	Title   LocalizedText `db:"title" json:"title"`
	Blocks  BlockList     `db:"blocks" json:"blocks"`
}

// ContentBlock is one storefront section. Render behavior is fully
// determined by (Type, Settings, Content); ordering is list position.
type ContentBlock struct {
	ID       string                   `json:"id"`
	Type     string                   `json:"type"`
	Settings map[string]interface{}   `json:"settings"`
	Content  map[string]LocalizedText `json:"content"`
}

// BlockList maps the jsonb blocks column onto the ordered block slice.
type BlockList []ContentBlock

func (b BlockList) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal([]ContentBlock{})
	}
	return json.Marshal(b)
}

func (b *BlockList) Scan(src interface{}) error {
	if src == nil {
		*b = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("block list: cannot scan %T", src)
	}
}
