package employee

// Employee rows are created only by the seed loader and never mutated or
// deleted afterwards, so the model carries no timestamps.
type Employee struct {
	ID           int64             `gorm:"primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Email        string            `gorm:"column:email;uniqueIndex;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Age          string            `gorm:"column:age"`
	StreetName   string            `gorm:"column:street_name"`
	StreetNumber string            `gorm:"column:street_number"`
	Postcode     string            `gorm:"column:postcode"`
	City         string            `gorm:"column:city"`
	State        string            `gorm:"column:state"`
	Country      string            `gorm:"column:country"`
	Pictures     []EmployeePicture `gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeePicture holds one URL per size label per employee. Size labels are
// the ones the upstream data source emits: large, medium, thumbnail.
type EmployeePicture struct {
	ID          int64  `gorm:"primaryKey"`
	PictureSize string `gorm:"column:picture_size"`
	Picture     string `gorm:"column:picture"`
	EmployeeID  int64  `gorm:"column:employee_id;not null;index"`
}

func (EmployeePicture) TableName() string {
	return "employee_pictures"
}
