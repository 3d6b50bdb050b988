package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company's rows. Every repository applies it
// so no payroll data crosses tenant boundaries.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
