// Package policy holds the role hierarchy rules: pure decision
// functions over the caller identity, the target record and the
// requested changes. No storage access happens here; callers pass the
// persisted target record in.
package policy

import (
	"github.com/MatiasBordenave/Practica-Backend/internal/model"
)

// Caller is the identity decoded from a verified bearer token.
type Caller struct {
	ID   uint
	Role string
}

// Changes is the set of fields an update wants to touch. Nil pointers
// mean the field is absent from the request and stays untouched.
type Changes struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	Status   *string
}

// Denial is a policy refusal carrying a human readable reason. The
// handler layer maps it to 403.
type Denial struct {
	Reason string
}

func (d *Denial) Error() string { return d.Reason }

func deny(reason string) *Denial { return &Denial{Reason: reason} }

// CanRead authorizes list and get operations: any authenticated caller
// may read any record.
func CanRead(caller *Caller) error {
	if caller == nil {
		return deny("Acceso denegado, falta token")
	}
	return nil
}

// CanCreate authorizes administrative account creation with an explicit
// role. Public self-registration never goes through here: it carries no
// caller and has its role forced to usuario by the service.
func CanCreate(caller *Caller, requestedRole string) error {
	if caller == nil || (caller.Role != model.RoleAdmin && caller.Role != model.RoleSuperadmin) {
		return deny("No tienes permiso para crear usuarios")
	}
	if requestedRole == model.RoleSuperadmin && caller.Role != model.RoleSuperadmin {
		return deny("Solo un Superadmin puede asignar ese rango")
	}
	return nil
}

// CanUpdate authorizes a partial update of target by caller. The most
// restrictive applicable rule wins, so the self-delete guard and the
// superadmin protection are checked before the admin scope rule.
func CanUpdate(caller Caller, target *model.User, changes Changes) error {
	// Nobody soft-deletes their own account, whatever their role.
	if caller.ID == target.ID && changes.Status != nil && *changes.Status == model.StatusDeleted {
		return deny("No puedes eliminar tu propia cuenta desde aquí")
	}

	// A plain user may only touch their own record.
	if caller.Role == model.RoleUsuario && caller.ID != target.ID {
		return deny("No tienes permisos para editar otros usuarios")
	}

	// Only a superadmin touches a superadmin.
	if target.Role == model.RoleSuperadmin && caller.Role != model.RoleSuperadmin {
		return deny("Nivel insuficiente para modificar a un Superadmin")
	}

	// An admin edits end users, or themself.
	if caller.Role == model.RoleAdmin && target.Role != model.RoleUsuario && caller.ID != target.ID {
		return deny("Como Admin, solo puedes editar usuarios finales")
	}

	// The superadmin rank is only granted by a superadmin.
	if changes.Role != nil && *changes.Role == model.RoleSuperadmin && caller.Role != model.RoleSuperadmin {
		return deny("Solo un Superadmin puede asignar ese rango")
	}

	return nil
}

// CanDelete authorizes deletion of target by caller: superadmin deletes
// admins and end users, admin deletes end users only, nobody deletes a
// superadmin, and an anonymous delete is always refused.
func CanDelete(caller *Caller, target *model.User) error {
	if caller == nil {
		return deny("Acceso denegado, falta token")
	}

	if caller.Role == model.RoleSuperadmin &&
		(target.Role == model.RoleAdmin || target.Role == model.RoleUsuario) {
		return nil
	}

	if caller.Role == model.RoleAdmin && target.Role == model.RoleUsuario {
		return nil
	}

	return deny("No tienes jerarquía suficiente para borrar este usuario")
}
