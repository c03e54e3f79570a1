package model

// Visitor 访客表，对应 visitors
type Visitor struct {
	MuseumUser
	BaseModel
}

// TableName 指定表名
func (Visitor) TableName() string { return "visitors" }
