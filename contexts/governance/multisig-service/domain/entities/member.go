package entities

import (
	"strings"

	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
)

// Address identifies a governance participant. It is opaque to the engine;
// the empty value (after trimming) is the zero sentinel and is never stored
// in a registry.
type Address string

func (a Address) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Role is a capability granted per member by the permission oracle.
type Role string

const (
	RoleProposer Role = "proposer"
	RoleVoter    Role = "voter"
	RoleExecutor Role = "executor"
)

// MemberSet is a dense arena of member addresses with an explicit live count.
// Indices 0..Count-1 are always contiguous; removal swaps the target with the
// last live entry, so member ordering is not stable across removals.
type MemberSet struct {
	Slots []Address
	Count int
}

// Add appends the address at index Count. Duplicate entries are permitted;
// vote deduplication happens per (transaction, member), not per slot.
func (m *MemberSet) Add(addr Address) error {
	if addr.IsZero() {
		return domainerrors.ErrZeroAddress
	}
	if m.Count < len(m.Slots) {
		m.Slots[m.Count] = addr
	} else {
		m.Slots = append(m.Slots, addr)
	}
	m.Count++
	return nil
}

// Remove deletes the first occurrence of addr by overwriting it with the last
// live entry and truncating. The vacated slot is cleared to the zero sentinel.
func (m *MemberSet) Remove(addr Address) error {
	if addr.IsZero() {
		return domainerrors.ErrZeroAddress
	}
	index := -1
	for i := 0; i < m.Count; i++ {
		if m.Slots[i] == addr {
			index = i
			break
		}
	}
	if index < 0 {
		return domainerrors.ErrNotMember
	}
	last := m.Count - 1
	if index != last {
		m.Slots[index] = m.Slots[last]
	}
	m.Slots[last] = ""
	m.Count--
	return nil
}

func (m MemberSet) Contains(addr Address) bool {
	for i := 0; i < m.Count; i++ {
		if m.Slots[i] == addr {
			return true
		}
	}
	return false
}

// List materializes the live members in index order.
func (m MemberSet) List() []Address {
	members := make([]Address, m.Count)
	copy(members, m.Slots[:m.Count])
	return members
}

func (m MemberSet) Clone() MemberSet {
	slots := make([]Address, len(m.Slots))
	copy(slots, m.Slots)
	return MemberSet{Slots: slots, Count: m.Count}
}
