package domain

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

type Enterprise struct {
	ID                uuid.UUID
	Name              string
	IsPrimaryProducer bool
}

type Permission string

// remember to add new permissions to the validPermissions map
const (
	PermissionAddToOrderCycle       Permission = "add_to_order_cycle"
	PermissionManageProducts        Permission = "manage_products"
	PermissionEditProfile           Permission = "edit_profile"
	PermissionCreateVariantOverride Permission = "create_variant_overrides"
)

var validPermissions = map[Permission]struct{}{
	PermissionAddToOrderCycle:       {},
	PermissionManageProducts:        {},
	PermissionEditProfile:           {},
	PermissionCreateVariantOverride: {},
}

func ToPermission(s string) (Permission, error) {
	p := Permission(s)
	if _, ok := validPermissions[p]; ok {
		return p, nil
	}

	return "", errors.New("invalid permission")
}

// EnterpriseRelationship grants permissions from the parent enterprise to the child.
type EnterpriseRelationship struct {
	ID          uuid.UUID
	ParentID    uuid.UUID
	ChildID     uuid.UUID
	Permissions []Permission
}

func (r EnterpriseRelationship) Grants(p Permission) bool {
	return slices.Contains(r.Permissions, p)
}

type Customer struct {
	ID           uuid.UUID
	EnterpriseID uuid.UUID
	Email        string
	Name         string
}
