// Package fingerprint derives privacy-preserving identifiers from request
// attributes.
//
// HashIP turns a client address into a salted SHA-256 hex digest so that
// submissions from the same address can be correlated without ever storing
// the address itself:
//
//	if hash, ok := fingerprint.HashIP(clientip.GetIP(r), salt); ok {
//		record.IPHash = &hash
//	}
//
// The digest is deterministic for a given salt. Rotating the salt breaks
// correlation with previously stored hashes.
package fingerprint
