package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList は画像URLなどの文字列配列。DBにはJSON文字列で保存する。
type StringList []string

// Value はJSON文字列にする
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan はJSON文字列から戻す。空や NULL は空配列。
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("string list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// GormDataType はマイグレーション時の型
func (StringList) GormDataType() string {
	return "text"
}
