package migration

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vedartha/erp-backend-go/internal/domain/employee"
)

// Scheme describes the employee code namespaces. Codes in the current
// namespace are CurrentPrefix followed by BaseOffset plus a positive counter;
// any other all-numeric code is legacy and due for renumbering.
type Scheme struct {
	CurrentPrefix string
	BaseOffset    int
}

// IsCurrent reports whether an id already lives in the current namespace.
func (s Scheme) IsCurrent(id string) bool {
	if !strings.HasPrefix(id, s.CurrentPrefix) {
		return false
	}
	suffix, err := strconv.Atoi(strings.TrimPrefix(id, s.CurrentPrefix))
	return err == nil && suffix > s.BaseOffset
}

// IsLegacy reports whether an id needs renumbering. Non-numeric ids are
// outside both namespaces and are left alone.
func (s Scheme) IsLegacy(id string) bool {
	if _, err := strconv.Atoi(id); err != nil {
		return false
	}
	return !s.IsCurrent(id)
}

// suffix returns the numeric part after the current prefix, or -1.
func (s Scheme) suffix(id string) int {
	if !s.IsCurrent(id) {
		return -1
	}
	n, _ := strconv.Atoi(strings.TrimPrefix(id, s.CurrentPrefix))
	return n
}

// format builds the id for a counter value.
func (s Scheme) format(counter int) string {
	return s.CurrentPrefix + strconv.Itoa(s.BaseOffset+counter)
}

// NextID returns the next unissued id in the current namespace. New-employee
// creation and the migrator share this counter logic.
func (s Scheme) NextID(employees []employee.Employee) string {
	counter := 1
	for _, e := range employees {
		if suffix := s.suffix(e.ID); suffix >= 0 {
			if next := suffix - s.BaseOffset + 1; next > counter {
				counter = next
			}
		}
	}
	return s.format(counter)
}

// Assignment maps one legacy employee code to its replacement.
type Assignment struct {
	OldID string
	NewID string
}

// Plan computes the renumbering for one run. It is pure: no I/O, and the same
// input always yields the same assignments.
//
// The counter starts at 1 unless ids in the current namespace already exist;
// then it starts just past the highest issued suffix so a partially-applied
// earlier run can never cause a suffix to be reissued. Legacy records are
// processed in ascending id order so the assignment is deterministic.
func Plan(employees []employee.Employee, scheme Scheme) []Assignment {
	counter := 1
	var legacy []string
	for _, e := range employees {
		if suffix := scheme.suffix(e.ID); suffix >= 0 {
			if next := suffix - scheme.BaseOffset + 1; next > counter {
				counter = next
			}
			continue
		}
		if scheme.IsLegacy(e.ID) {
			legacy = append(legacy, e.ID)
		}
	}
	if len(legacy) == 0 {
		return nil
	}
	sort.Strings(legacy)

	assignments := make([]Assignment, 0, len(legacy))
	for _, oldID := range legacy {
		assignments = append(assignments, Assignment{OldID: oldID, NewID: scheme.format(counter)})
		counter++
	}
	return assignments
}
