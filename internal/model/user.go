package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRole is the value of User.Role that grants admin access.
const AdminRole = "admin"

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Badge     string             `bson:"badge,omitempty" json:"badge,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type AdminStatus struct {
	Admin bool `json:"admin"`
}
