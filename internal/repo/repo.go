package repo

import (
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

// statsScanLimit bounds the order scan behind statistics and student
// rollups. A scale limit, not a streaming design.
const statsScanLimit = 2000
