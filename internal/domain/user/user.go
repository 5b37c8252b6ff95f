package user

import (
	"errors"
	"time"
)

const (
	RoleAdmin       = "admin"
	RoleDeliveryman = "deliveryman"
	RoleCustomer    = "customer"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=admin deliveryman customer"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin deliveryman customer"`
}
