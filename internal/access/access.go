// Package access holds the marketplace authorization rules.
//
// Every decision is a pure function of the caller's identity and the owner of
// the target resource. The owning record must be loaded from the store before a
// decision is taken; client-supplied owner fields are never trusted.
package access

import "marketplace-server/internal/models"

// CanViewPrivateUser allows admins and the user themself.
func CanViewPrivateUser(callerID, targetID int64, callerIsAdmin bool) bool {
	return callerIsAdmin || callerID == targetID
}

// CanMutateUser governs profile edits and picture changes.
func CanMutateUser(callerID, targetID int64, callerIsAdmin bool) bool {
	return callerIsAdmin || callerID == targetID
}

func CanPromote(callerIsAdmin bool) bool    { return callerIsAdmin }
func CanCrown(callerIsAdmin bool) bool      { return callerIsAdmin }
func CanDeleteUser(callerIsAdmin bool) bool { return callerIsAdmin }
func CanListUsers(callerIsAdmin bool) bool  { return callerIsAdmin }

// CanCreateProduct is seller-only. Admin does not imply seller.
func CanCreateProduct(callerIsSeller bool) bool {
	return callerIsSeller
}

// CanMutateProduct is owner-only, with no admin override.
func CanMutateProduct(callerID, ownerID int64) bool {
	return callerID == ownerID
}

// CanDeleteProduct allows the owner or an admin.
func CanDeleteProduct(callerID, ownerID int64, callerIsAdmin bool) bool {
	return callerIsAdmin || callerID == ownerID
}

func CanApproveProduct(callerIsAdmin bool) bool { return callerIsAdmin }

// CanViewUnapproved allows the owner or an admin to see listings still in moderation.
func CanViewUnapproved(callerID, ownerID int64, callerIsAdmin bool) bool {
	return callerIsAdmin || callerID == ownerID
}

// CanManageImage gates image creation.
func CanManageImage(callerIsSeller bool) bool { return callerIsSeller }

// CanAdminImage gates listing and deleting individual images by id.
func CanAdminImage(callerIsAdmin bool) bool { return callerIsAdmin }

// CanManageTag gates tag creation and deletion.
func CanManageTag(callerIsSeller bool) bool { return callerIsSeller }

// CanDeleteTag allows a seller who owns the tagged product, or any admin.
func CanDeleteTag(callerID, ownerID int64, callerIsSeller, callerIsAdmin bool) bool {
	return callerIsAdmin || (CanManageTag(callerIsSeller) && CanMutateProduct(callerID, ownerID))
}

func CanListTags(callerIsAdmin bool) bool { return callerIsAdmin }

// Rule is a decision over an established caller.
type Rule func(c models.Caller) bool

// Require turns a decision into an error: ErrUnauthenticated when there is no
// caller, ErrForbidden when any rule denies.
func Require(caller *models.Caller, rules ...Rule) error {
	if caller == nil {
		return models.ErrUnauthenticated
	}
	for _, allowed := range rules {
		if !allowed(*caller) {
			return models.ErrForbidden
		}
	}
	return nil
}

// Authenticated only requires an established caller.
func Authenticated(models.Caller) bool { return true }

func Admin(c models.Caller) bool  { return CanApproveProduct(c.Admin) }
func Seller(c models.Caller) bool { return CanCreateProduct(c.Seller) }

// Self allows the target user themself or an admin.
func Self(targetID int64) Rule {
	return func(c models.Caller) bool { return CanMutateUser(c.UserID, targetID, c.Admin) }
}

// Owner allows only the owner of a product.
func Owner(ownerID int64) Rule {
	return func(c models.Caller) bool { return CanMutateProduct(c.UserID, ownerID) }
}

// TagEditor allows deleting a tag on a product owned by ownerID.
func TagEditor(ownerID int64) Rule {
	return func(c models.Caller) bool { return CanDeleteTag(c.UserID, ownerID, c.Seller, c.Admin) }
}

// OwnerOrAdmin allows the owner of a product or an admin.
func OwnerOrAdmin(ownerID int64) Rule {
	return func(c models.Caller) bool { return CanDeleteProduct(c.UserID, ownerID, c.Admin) }
}
