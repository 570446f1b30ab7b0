package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// JSONList 将字符串列表序列化为JSON列值；空列表存NULL而非"[]"
func JSONList(items []string) datatypes.JSON {
	if len(items) == 0 {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
