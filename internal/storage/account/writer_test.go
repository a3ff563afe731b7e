package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeForInstitution(t *testing.T) {
	assert.Equal(t, AccountTypeSavings, typeForInstitution("Cash"))
	assert.Equal(t, AccountTypeChecking, typeForInstitution("SBI"))
	assert.Equal(t, AccountTypeChecking, typeForInstitution("Credit Card"))
	assert.Equal(t, AccountTypeChecking, typeForInstitution("cash"))
}
