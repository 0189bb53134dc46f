package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// To satisfy postgres jsonb data type
type ImageList []string

func (il *ImageList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, il)
}

func (il ImageList) Value() (driver.Value, error) {
	if il == nil {
		il = ImageList{}
	}
	return json.Marshal(il)
}
