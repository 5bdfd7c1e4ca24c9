// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Page":
		return db.AutoMigrate(Page{})

	case "PageDiff":
		return db.AutoMigrate(PageDiff{})
	}
	return nil
}
