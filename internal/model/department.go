package model

// Department 部门表 — 对应 departments
type Department struct {
	DepartmentID uint   `gorm:"primaryKey"                 json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	SoftDeleteModel
}

func (Department) TableName() string { return "departments" }

// JobTitle 职位表 — 对应 job_titles
type JobTitle struct {
	JobTitleID   uint   `gorm:"primaryKey"                 json:"job_title_id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	DepartmentID uint   `gorm:"not null"                   json:"department_id"`
	SoftDeleteModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (JobTitle) TableName() string { return "job_titles" }
