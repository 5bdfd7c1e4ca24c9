package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst
// StructAssign 将 src 中与 dst 同名的字段值复制到 dst
func StructAssign(src any, dst any) any {
	_ = copier.Copy(dst, src)
	return dst
}

// StructToMap converts a struct to a map through its JSON form
// StructToMap 通过 JSON 形式将结构体转换为 map
func StructToMap(param any, data map[string]any) error {
	raw, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, &data)
}
