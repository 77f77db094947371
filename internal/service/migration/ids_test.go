package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
)

var testScheme = Scheme{CurrentPrefix: "91", BaseOffset: 1000}

func TestScheme_Classification(t *testing.T) {
	tests := []struct {
		id      string
		current bool
		legacy  bool
	}{
		{"911001", true, false},
		{"911002", true, false},
		{"8341", false, true},
		{"42", false, true},
		{"911000", false, true}, // suffix equals the base offset, not past it
		{"91999", false, true},  // below the base offset
		{"EMP-7", false, false}, // non-numeric ids are outside both namespaces
		{"", false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.current, testScheme.IsCurrent(tt.id), "IsCurrent(%q)", tt.id)
		assert.Equal(t, tt.legacy, testScheme.IsLegacy(tt.id), "IsLegacy(%q)", tt.id)
	}
}

func TestScheme_NextID(t *testing.T) {
	assert.Equal(t, "911001", testScheme.NextID(nil))

	employees := []employee.Employee{
		{ID: "911001"}, {ID: "911002"}, {ID: "EMP-7"},
	}
	assert.Equal(t, "911003", testScheme.NextID(employees))
}

func TestPlan_Empty(t *testing.T) {
	assert.Nil(t, Plan(nil, testScheme))
	assert.Nil(t, Plan([]employee.Employee{{ID: "911001"}, {ID: "EMP-7"}}, testScheme))
}

func TestPlan_SingleLegacy(t *testing.T) {
	got := Plan([]employee.Employee{{ID: "8341"}}, testScheme)
	assert.Equal(t, []Assignment{{OldID: "8341", NewID: "911001"}}, got)
}

func TestPlan_CounterSeedsPastIssuedSuffixes(t *testing.T) {
	// Ids 911001 and 911002 are already issued, so the next legacy record
	// must land on 911003 even though the counter would otherwise start at 1.
	employees := []employee.Employee{
		{ID: "42"}, {ID: "911001"}, {ID: "911002"},
	}
	got := Plan(employees, testScheme)
	assert.Equal(t, []Assignment{{OldID: "42", NewID: "911003"}}, got)
}

func TestPlan_Deterministic(t *testing.T) {
	employees := []employee.Employee{
		{ID: "88"}, {ID: "205"}, {ID: "7"},
	}
	first := Plan(employees, testScheme)
	second := Plan(employees, testScheme)
	assert.Equal(t, first, second)

	// Legacy ids are assigned in ascending string order.
	assert.Equal(t, []Assignment{
		{OldID: "205", NewID: "911001"},
		{OldID: "7", NewID: "911002"},
		{OldID: "88", NewID: "911003"},
	}, first)
}
