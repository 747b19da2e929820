package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormaliseDropsBlanksAndDuplicates(t *testing.T) {
	t.Parallel()

	roles := Normalise([]string{" Admin ", "mechanic", "", "admin"})
	require.Equal(t, Roles{RoleAdmin, RoleMechanic}, roles)
}

func TestHasAnyRoleIntersection(t *testing.T) {
	t.Parallel()

	require.False(t, HasAnyRole(nil, Roles{RoleAdmin}))
	require.True(t, HasAnyRole([]string{"mechanic"}, Roles{RoleMechanic, RoleAdmin}))
	require.False(t, HasAnyRole([]string{"mechanic"}, Roles{RoleAdmin}))
	require.True(t, HasAnyRole([]string{"admin"}, Roles{RoleAdmin}))
}

func TestHasAnyRoleEmptyRequirementAllows(t *testing.T) {
	t.Parallel()

	require.True(t, HasAnyRole(nil, nil))
}
