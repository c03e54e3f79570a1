package dto

// ── 馆员 / 访客模块 DTO ──

// CreateMuseumUserRequest 创建馆员或注册访客请求
type CreateMuseumUserRequest struct {
	Email    string `json:"email"    binding:"required,email,max=255"`
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateMuseumUserRequest 更新馆员或访客请求
type UpdateMuseumUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// AssignScheduleRequest 为馆员指定排班表
type AssignScheduleRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required,uuid"`
}

// MuseumUserDto 通用用户响应（访客）
// Password 为存储的 bcrypt 哈希，随 DTO 传递但不序列化
type MuseumUserDto struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"`
}

// EmployeeDto 馆员响应
type EmployeeDto struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Password string       `json:"-"`
	Schedule *ScheduleDto `json:"schedule"`
}
