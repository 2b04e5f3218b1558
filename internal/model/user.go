package model

// User 员工表 — 对应 users
type User struct {
	UserID           uint   `gorm:"primaryKey"                                   json:"user_id"`
	Name             string `gorm:"type:varchar(100);not null"                   json:"name"`
	Email            string `gorm:"type:varchar(255);not null"                   json:"email"`
	EmployeeNo       string `gorm:"type:varchar(20);not null"                    json:"employee_no"`
	Role             string `gorm:"type:varchar(20);not null;default:'employee'" json:"role"` // admin | hr | employee
	DepartmentID     *uint  `json:"department_id,omitempty"`
	JobTitleID       *uint  `json:"job_title_id,omitempty"`
	EmploymentStatus string `gorm:"type:varchar(20);not null;default:'active'"   json:"employment_status"` // active | inactive
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	JobTitle   *JobTitle   `gorm:"foreignKey:JobTitleID;references:JobTitleID"     json:"job_title,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
