package model

import "studiodesk/shared/model"

const (
	TableName  = "main.admin_users"
	EntityName = "admin_user"

	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
)

// AdminUser is the stored credential of a staff account.
type AdminUser struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	model.Metadata
}
