package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies_RoleMatrix(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	anyRole := ev.MustCompile(ExprAnyRole)
	stockManagers := ev.MustCompile(ExprStockManagers)
	adminOnly := ev.MustCompile(ExprAdminOnly)

	tests := []struct {
		role          string
		anyRole       bool
		stockManagers bool
		adminOnly     bool
	}{
		{"ADMIN", true, true, true},
		{"PHARMACIST", true, true, false},
		{"CASHIER", true, false, false},
		{"INTERN", false, false, false},
		{"admin", false, false, false}, // roles are case-sensitive
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run("role "+tt.role, func(t *testing.T) {
			assert.Equal(t, tt.anyRole, anyRole.Allows(tt.role))
			assert.Equal(t, tt.stockManagers, stockManagers.Allows(tt.role))
			assert.Equal(t, tt.adminOnly, adminOnly.Allows(tt.role))
		})
	}
}

func TestCompile_RejectsNonBoolExpression(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	_, err = ev.Compile(`role`)
	assert.Error(t, err)

	_, err = ev.Compile(`1 + 2`)
	assert.Error(t, err)
}

func TestCompile_RejectsUnknownVariable(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	_, err = ev.Compile(`tenant == "x"`)
	assert.Error(t, err)
}

func TestPolicy_String(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)

	p, err := ev.Compile(ExprAdminOnly)
	require.NoError(t, err)
	assert.Equal(t, ExprAdminOnly, p.String())
}
