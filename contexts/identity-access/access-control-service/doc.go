// Package accesscontrolservice owns capability grants and the account pause
// switch inside the identity-access context.
//
// It answers two questions for the rest of the platform: does this member
// hold this role on this account, and is the account currently paused. The
// governance context consumes both answers through its own ports so the
// dependency stays one-directional.
package accesscontrolservice
