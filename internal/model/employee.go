package model

// Employee 馆员表，对应 employees
// Schedule 为一对一归属；未分配时为 nil，转换 DTO 前需显式处理
type Employee struct {
	MuseumUser
	ScheduleID *string `gorm:"type:uuid;uniqueIndex" json:"schedule_id,omitempty"`
	BaseModel

	// 关联
	Schedule *Schedule `gorm:"foreignKey:ScheduleID;references:ScheduleID" json:"schedule,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }
