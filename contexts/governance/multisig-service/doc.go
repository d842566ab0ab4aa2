// Package multisigservice implements the multi-party authorization engine
// inside the governance context.
//
// The module owns the member registry, the quorum threshold, and the
// transaction lifecycle: proposals move from initiated to approved once
// enough members vote for them, to rejected as soon as quorum becomes
// mathematically unreachable, and from approved to executed. Capability
// checks (proposer/voter/executor roles) and the account-wide pause switch
// are consumed through ports owned by the identity-access context.
package multisigservice
