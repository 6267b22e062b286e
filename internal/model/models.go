package model

// 所有模型的统一导入点
// 用于 AutoMigrate，顺序与外键依赖一致
var AllModels = []interface{}{
	&Role{},
	&User{},
	&Category{},
	&Tag{},
	&AITool{},
	&AIToolCategory{},
	&AIToolRole{},
	&AIToolTag{},
	&UsageLog{},
	&Favorite{},
}
